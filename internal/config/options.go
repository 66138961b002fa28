package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

type configuration struct {
	FileSystem afero.Fs
	Getenv     func(string) string
	ConfigFile string
	Directory  string
	HomeDir    string
}

var Options singleton

type singleton struct{}
type option func(*configuration)

func (singleton) FileSystem(value afero.Fs) option {
	return func(this *configuration) { this.FileSystem = value }
}
func (singleton) Getenv(value func(string) string) option {
	return func(this *configuration) { this.Getenv = value }
}

// ConfigFile names an explicit configuration file, bypassing the search for
// .sqlcompat.yaml in the working and home directories.
func (singleton) ConfigFile(value string) option {
	return func(this *configuration) { this.ConfigFile = value }
}

// Directory is where .sqlcompat.yaml, .env and .env.local are looked for first.
func (singleton) Directory(value string) option {
	return func(this *configuration) { this.Directory = value }
}
func (singleton) HomeDir(value string) option {
	return func(this *configuration) { this.HomeDir = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}
	}
}
func (singleton) defaults(options ...option) []option {
	home, _ := homedir.Dir() // without a home directory only the working directory is searched

	return append([]option{
		Options.FileSystem(afero.NewOsFs()),
		Options.Getenv(os.Getenv),
		Options.Directory("."),
		Options.HomeDir(home),
	}, options...)
}
