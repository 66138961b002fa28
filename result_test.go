package sqlcompat

import (
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestResultFixture(t *testing.T) {
	gunit.Run(new(ResultFixture), t)
}

type ResultFixture struct {
	*gunit.Fixture

	rows []Row
}

func (this *ResultFixture) Setup() {
	this.rows = []Row{
		NewRecord([]string{"name", "description"}, []interface{}{"foo", "bar"}),
		NewRecord([]string{"name", "description"}, []interface{}{"baz", "bork"}),
		NewRecord([]string{"name", "description"}, []interface{}{"qux", nil}),
	}
}

func (this *ResultFixture) TestFirstOfEmptyResultIsNoRow() {
	result := NewResult(nil)

	row, found := result.First()

	this.So(row, should.BeNil)
	this.So(found, should.BeFalse)
	this.So(result.All(), should.BeEmpty)
	this.So(result.Len(), should.Equal, 0)
}
func (this *ResultFixture) TestFirstReturnsLeadingRow() {
	row, found := NewResult(this.rows).First()

	this.So(found, should.BeTrue)
	this.So(row, should.Resemble, this.rows[0])
}
func (this *ResultFixture) TestAllPreservesQueryOrder() {
	all := NewResult(this.rows).All()

	this.So(all, should.Resemble, this.rows)
}
func (this *ResultFixture) TestAllReturnsIndependentViews() {
	result := NewResult(this.rows)

	first := result.All()
	first[0] = nil
	second := result.All()

	this.So(second[0], should.Resemble, this.rows[0])
	this.So(result.Len(), should.Equal, 3)
}

func (this *ResultFixture) TestRecordValuesAreAddressableByColumnName() {
	row := this.rows[2]

	name, nameFound := row.Value("name")
	description, descriptionFound := row.Value("description")
	_, missingFound := row.Value("missing")

	this.So(name, should.Equal, "qux")
	this.So(nameFound, should.BeTrue)
	this.So(description, should.BeNil)
	this.So(descriptionFound, should.BeTrue)
	this.So(missingFound, should.BeFalse)
	this.So(row.Columns(), should.Resemble, []string{"name", "description"})
	this.So(row.Values(), should.Resemble, []interface{}{"qux", nil})
}
func (this *ResultFixture) TestRepeatedColumnResolvesToFirstOccurrence() {
	row := NewRecord([]string{"id", "id"}, []interface{}{1, 2})

	value, _ := row.Value("id")

	this.So(value, should.Equal, 1)
}
