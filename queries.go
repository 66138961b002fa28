package sqlcompat

import (
	"regexp"
	"strings"
	"sync"
)

// Queries is the process-wide rewrite cache. It is the default for every Connection and
// lives for as long as the process; entries are never evicted.
var Queries = NewQueryCache()

// Text rewrites the query through the process-wide cache.
func Text(query string) string { return Queries.Text(query) }

// QueryCache converts :p<N> placeholders into the driver-native $<N> form and remembers
// each conversion. It is safe for concurrent use.
type QueryCache struct {
	converted sync.Map
}

func NewQueryCache() *QueryCache { return &QueryCache{} }

func (this *QueryCache) Text(query string) string {
	if cached, ok := this.converted.Load(query); ok {
		return cached.(string)
	}

	rewritten := rewrite(query)
	actual, _ := this.converted.LoadOrStore(query, rewritten)
	return actual.(string)
}

func (this *QueryCache) Len() (count int) {
	this.converted.Range(func(_, _ interface{}) bool { count++; return true })
	return count
}

func rewrite(query string) string {
	query = placeholderPattern.ReplaceAllString(query, "$$$1")
	return strings.ReplaceAll(query, escapedColon, ":")
}

var placeholderPattern = regexp.MustCompile(`:p(\d+)`)

const escapedColon = `\:`
