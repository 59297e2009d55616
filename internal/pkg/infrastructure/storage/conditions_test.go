package storage

import (
	"net/url"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func parseQuery(t *testing.T, rawQuery string) Condition {
	is := is.New(t)

	params, err := url.ParseQuery(rawQuery)
	is.NoErr(err)

	fns, err := ParseConditions(params)
	is.NoErr(err)

	condition := &Condition{}
	for _, fn := range fns {
		condition = fn(condition)
	}

	return *condition
}

func TestDefaultsWhenNoPagingGiven(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "")

	is.Equal(c.Page(), 1)
	is.Equal(c.Limit(), 10)
	is.Equal(c.Offset(), 0)
}

func TestPageAndLimit(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "page=3&limit=5")

	is.Equal(c.Page(), 3)
	is.Equal(c.Limit(), 5)
	is.Equal(c.Offset(), 10)
}

func TestNonNumericPagingFallsBackToDefaults(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "page=two&limit=")

	is.Equal(c.Page(), 1)
	is.Equal(c.Limit(), 10)
}

func TestSplitKey(t *testing.T) {
	is := is.New(t)

	field, op := splitKey("tuition[lte]")
	is.Equal(field, "tuition")
	is.Equal(op, "lte")

	field, op = splitKey("tuition")
	is.Equal(field, "tuition")
	is.Equal(op, "")

	field, op = splitKey("tuition[sqrt]")
	is.Equal(field, "tuition[sqrt]")
	is.Equal(op, "")
}

func TestComparisonOperatorsTranslateToSQL(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "averageCost[lte]=10000&averageRating[gte]=4")

	where := c.Where()
	is.True(strings.Contains(where, "(data->>'averageCost')::numeric <= @average_cost_lte"))
	is.True(strings.Contains(where, "(data->>'averageRating')::numeric >= @average_rating_gte"))

	args := c.NamedArgs()
	is.Equal(args["average_cost_lte"], 10000.0)
	is.Equal(args["average_rating_gte"], 4.0)
}

func TestPlainNumericValueMeansEquality(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "weeks=10")

	is.True(strings.Contains(c.Where(), "(data->>'weeks')::numeric = @weeks_eq"))
	is.Equal(c.NamedArgs()["weeks_eq"], 10.0)
}

func TestNumericListMatchesAnyOfTheGivenValues(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "weeks[in]=5,10")

	is.True(strings.Contains(c.Where(), "(data->>'weeks')::numeric = ANY(@weeks_in)"))
	is.Equal(c.NamedArgs()["weeks_in"], []float64{5, 10})
	is.Equal(c.courseWhere(), "WHERE (data->>'weeks')::numeric = ANY(@weeks_in)")
}

func TestMalformedNumericListIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := ParseConditions(map[string][]string{"tuition[in]": {"4000,cheap"}})
	is.True(err != nil)
}

func TestNameListMatchesAnyOfTheGivenValues(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "name[in]=Devworks Bootcamp,ModernTech Bootcamp")

	is.Equal(c.NameIn, []string{"Devworks Bootcamp", "ModernTech Bootcamp"})
	is.True(strings.Contains(c.Where(), "data->>'name' = ANY(@name_in)"))
}

func TestTitleListMatchesAnyOfTheGivenValues(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "title[in]=Front End Web Development,Full Stack Web Development")

	is.True(strings.Contains(c.courseWhere(), "data->>'title' = ANY(@title_in)"))
	is.Equal(c.NamedArgs()["title_in"], []string{"Front End Web Development", "Full Stack Web Development"})
}

func TestMalformedNumericBoundIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := ParseConditions(map[string][]string{"tuition[lte]": {"cheap"}})
	is.True(err != nil)
}

func TestUnknownParameterIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := ParseConditions(map[string][]string{"colour": {"blue"}})
	is.True(err != nil)
}

func TestSelectAndPopulateAreNotFilters(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "select=name,description&populate=courses")

	is.Equal(c.Where(), "")
}

func TestCareersMatchAnyOfTheGivenValues(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "careers[in]=Business,UI/UX")

	is.Equal(len(c.Careers), 2)
	is.True(strings.Contains(c.Where(), "data->'careers' ?| @careers"))
}

func TestSortTokens(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "sort=-averageCost,name")

	is.Equal(c.OrderBy(), "ORDER BY (data->>'averageCost')::numeric DESC, data->>'name' ASC")
}

func TestUnsortableFieldsAreIgnored(t *testing.T) {
	is := is.New(t)
	c := parseQuery(t, "sort=owner")

	is.Equal(c.OrderBy(), "ORDER BY created_on DESC")
}

func TestRadiusCondition(t *testing.T) {
	is := is.New(t)

	condition := &Condition{}
	condition = WithinRadius(-71.1, 42.3, 10.0/3963.0)(condition)

	is.True(strings.Contains(condition.Where(), "acos(LEAST(1.0,"))

	args := condition.NamedArgs()
	is.Equal(args["lon"], -71.1)
	is.Equal(args["lat"], 42.3)
}

func TestCourseWhereUsesCourseColumns(t *testing.T) {
	is := is.New(t)

	condition := &Condition{}
	condition = WithID("a2f5cdbb-5fd5-4c8d-9b85-63997b1f2a2e")(condition)
	condition = WithBootcampID("65b7f1ab-badf-4b2c-8f29-07e18537a03f")(condition)

	is.Equal(condition.courseWhere(), "WHERE course_id = @id AND bootcamp_id = @bootcamp_id")
	is.Equal(condition.Where(), "WHERE bootcamp_id = @id AND bootcamp_id = @bootcamp_id")
}
