package storage

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// comparison operators accepted in bracketed query keys, e.g. tuition[lte]=4000
var operators = []string{"gt", "gte", "lt", "lte", "in"}

var opSQL = map[string]string{
	"eq":  "=",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

type ConditionFunc func(*Condition) *Condition

type numericBound struct {
	op     string
	value  float64
	values []float64
}

func (b numericBound) arg() any {
	if b.op == "in" {
		return b.values
	}
	return b.value
}

// numericClause renders one bound on a numeric document field, where list
// membership compares against an array instead of a scalar.
func numericClause(expr, name string, b numericBound) string {
	if b.op == "in" {
		return fmt.Sprintf("(%s)::numeric = ANY(@%s_in)", expr, name)
	}
	return fmt.Sprintf("(%s)::numeric %s @%s_%s", expr, opSQL[b.op], name, b.op)
}

type sortTerm struct {
	field string
	desc  bool
}

type Condition struct {
	ID         string
	BootcampID string
	Owner      string

	Name          string
	NameIn        []string
	Title         string
	TitleIn       []string
	Careers       []string
	MinimumSkill  []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
	Scholarship   *bool

	AverageCost   []numericBound
	AverageRating []numericBound
	Tuition       []numericBound
	Weeks         []numericBound

	Center *Point
	Radius float64 // angular radius in radians

	sort []sortTerm

	page  *int
	limit *int

	unpaginated bool
}

type Point struct {
	Longitude float64
	Latitude  float64
}

func (c Condition) Page() int {
	if c.page == nil || *c.page < 1 {
		return DefaultPage
	}
	return *c.page
}

func (c Condition) Limit() int {
	if c.limit == nil || *c.limit < 1 {
		return DefaultLimit
	}
	return *c.limit
}

func (c Condition) Offset() int {
	return (c.Page() - 1) * c.Limit()
}

// sortable maps exposed sort keys to their SQL expression
var sortable = map[string]string{
	"name":          "data->>'name'",
	"title":         "data->>'title'",
	"averagecost":   "(data->>'averageCost')::numeric",
	"averagerating": "(data->>'averageRating')::numeric",
	"tuition":       "(data->>'tuition')::numeric",
	"weeks":         "(data->>'weeks')::numeric",
	"cost":          "(data->>'averageCost')::numeric",
	"createdat":     "created_on",
}

func (c Condition) OrderBy() string {
	if len(c.sort) == 0 {
		return "ORDER BY created_on DESC"
	}

	terms := make([]string, 0, len(c.sort))
	for _, s := range c.sort {
		dir := "ASC"
		if s.desc {
			dir = "DESC"
		}
		terms = append(terms, fmt.Sprintf("%s %s", sortable[s.field], dir))
	}

	return "ORDER BY " + strings.Join(terms, ", ")
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.ID != "" {
		args["id"] = c.ID
	}
	if c.BootcampID != "" {
		args["bootcamp_id"] = c.BootcampID
	}
	if c.Owner != "" {
		args["owner"] = c.Owner
	}
	if c.Name != "" {
		args["name"] = c.Name
	}
	if len(c.NameIn) > 0 {
		args["name_in"] = c.NameIn
	}
	if c.Title != "" {
		args["title"] = c.Title
	}
	if len(c.TitleIn) > 0 {
		args["title_in"] = c.TitleIn
	}
	if len(c.Careers) > 0 {
		args["careers"] = c.Careers
	}
	if len(c.MinimumSkill) > 0 {
		args["minimum_skill"] = c.MinimumSkill
	}
	if c.Housing != nil {
		args["housing"] = *c.Housing
	}
	if c.JobAssistance != nil {
		args["job_assistance"] = *c.JobAssistance
	}
	if c.JobGuarantee != nil {
		args["job_guarantee"] = *c.JobGuarantee
	}
	if c.AcceptGI != nil {
		args["accept_gi"] = *c.AcceptGI
	}
	if c.Scholarship != nil {
		args["scholarship"] = *c.Scholarship
	}

	for _, b := range c.AverageCost {
		args["average_cost_"+b.op] = b.arg()
	}
	for _, b := range c.AverageRating {
		args["average_rating_"+b.op] = b.arg()
	}
	for _, b := range c.Tuition {
		args["tuition_"+b.op] = b.arg()
	}
	for _, b := range c.Weeks {
		args["weeks_"+b.op] = b.arg()
	}

	if c.Center != nil {
		args["lon"] = c.Center.Longitude
		args["lat"] = c.Center.Latitude
		args["radius"] = c.Radius
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.ID != "" {
		where = append(where, "bootcamp_id = @id")
	}
	if c.BootcampID != "" {
		where = append(where, "bootcamp_id = @bootcamp_id")
	}
	if c.Owner != "" {
		where = append(where, "owner = @owner")
	}
	if c.Name != "" {
		where = append(where, "data->>'name' = @name")
	}
	if len(c.NameIn) > 0 {
		where = append(where, "data->>'name' = ANY(@name_in)")
	}
	if len(c.Careers) > 0 {
		where = append(where, "data->'careers' ?| @careers")
	}
	if len(c.MinimumSkill) > 0 {
		where = append(where, "data->>'minimumSkill' = ANY(@minimum_skill)")
	}
	if c.Housing != nil {
		where = append(where, "(data->>'housing')::boolean = @housing")
	}
	if c.JobAssistance != nil {
		where = append(where, "(data->>'jobAssistance')::boolean = @job_assistance")
	}
	if c.JobGuarantee != nil {
		where = append(where, "(data->>'jobGuarantee')::boolean = @job_guarantee")
	}
	if c.AcceptGI != nil {
		where = append(where, "(data->>'acceptGi')::boolean = @accept_gi")
	}
	if c.Scholarship != nil {
		where = append(where, "(data->>'scholarshipAvailable')::boolean = @scholarship")
	}

	for _, b := range c.AverageCost {
		where = append(where, numericClause("data->>'averageCost'", "average_cost", b))
	}
	for _, b := range c.AverageRating {
		where = append(where, numericClause("data->>'averageRating'", "average_rating", b))
	}
	for _, b := range c.Tuition {
		where = append(where, numericClause("data->>'tuition'", "tuition", b))
	}
	for _, b := range c.Weeks {
		where = append(where, numericClause("data->>'weeks'", "weeks", b))
	}

	if c.Center != nil {
		// great circle distance between the stored point and the center,
		// compared against the angular radius in radians
		where = append(where,
			"acos(LEAST(1.0, sin(radians(@lat)) * sin(radians(location[1])) + cos(radians(@lat)) * cos(radians(location[1])) * cos(radians(location[0] - @lon)))) <= @radius")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

// courseWhere builds the predicate for queries against the courses table,
// where the primary key column differs and the bootcamp reference is a
// plain column rather than a document field.
func (c Condition) courseWhere() string {
	where := []string{}

	if c.ID != "" {
		where = append(where, "course_id = @id")
	}
	if c.BootcampID != "" {
		where = append(where, "bootcamp_id = @bootcamp_id")
	}
	if c.Owner != "" {
		where = append(where, "owner = @owner")
	}
	if c.Title != "" {
		where = append(where, "data->>'title' = @title")
	}
	if len(c.TitleIn) > 0 {
		where = append(where, "data->>'title' = ANY(@title_in)")
	}
	if len(c.MinimumSkill) > 0 {
		where = append(where, "data->>'minimumSkill' = ANY(@minimum_skill)")
	}
	if c.Scholarship != nil {
		where = append(where, "(data->>'scholarshipAvailable')::boolean = @scholarship")
	}

	for _, b := range c.Tuition {
		where = append(where, numericClause("data->>'tuition'", "tuition", b))
	}
	for _, b := range c.Weeks {
		where = append(where, numericClause("data->>'weeks'", "weeks", b))
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

func WithID(id string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ID = id
		return c
	}
}

func WithBootcampID(id string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.BootcampID = id
		return c
	}
}

func WithOwner(owner string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Owner = owner
		return c
	}
}

func WithName(name string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Name = name
		return c
	}
}

func WithNameIn(names []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.NameIn = names
		return c
	}
}

func WithTitle(title string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Title = title
		return c
	}
}

func WithTitleIn(titles []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.TitleIn = titles
		return c
	}
}

func WithCareers(careers []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Careers = careers
		return c
	}
}

func WithMinimumSkill(skill []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.MinimumSkill = skill
		return c
	}
}

func WithHousing(b bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Housing = &b
		return c
	}
}

func WithJobAssistance(b bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.JobAssistance = &b
		return c
	}
}

func WithJobGuarantee(b bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.JobGuarantee = &b
		return c
	}
}

func WithAcceptGI(b bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AcceptGI = &b
		return c
	}
}

func WithScholarship(b bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Scholarship = &b
		return c
	}
}

func WithAverageCost(op string, value float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AverageCost = append(c.AverageCost, numericBound{op: op, value: value})
		return c
	}
}

func WithAverageCostIn(values []float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AverageCost = append(c.AverageCost, numericBound{op: "in", values: values})
		return c
	}
}

func WithAverageRating(op string, value float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AverageRating = append(c.AverageRating, numericBound{op: op, value: value})
		return c
	}
}

func WithAverageRatingIn(values []float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AverageRating = append(c.AverageRating, numericBound{op: "in", values: values})
		return c
	}
}

func WithTuition(op string, value float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tuition = append(c.Tuition, numericBound{op: op, value: value})
		return c
	}
}

func WithTuitionIn(values []float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tuition = append(c.Tuition, numericBound{op: "in", values: values})
		return c
	}
}

func WithWeeks(op string, value float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Weeks = append(c.Weeks, numericBound{op: op, value: value})
		return c
	}
}

func WithWeeksIn(values []float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Weeks = append(c.Weeks, numericBound{op: "in", values: values})
		return c
	}
}

func WithinRadius(lon, lat, radius float64) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Center = &Point{Longitude: lon, Latitude: lat}
		c.Radius = radius
		return c
	}
}

func WithSort(field string, desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if _, ok := sortable[strings.ToLower(field)]; ok {
			c.sort = append(c.sort, sortTerm{field: strings.ToLower(field), desc: desc})
		}
		return c
	}
}

func WithPage(page int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.page = &page
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

// WithoutPagination returns the full filtered set in one window.
func WithoutPagination() ConditionFunc {
	return func(c *Condition) *Condition {
		c.unpaginated = true
		return c
	}
}

// splitKey separates a bracketed comparison operator from its field,
// i.e. "tuition[lte]" becomes ("tuition", "lte").
func splitKey(key string) (string, string) {
	open := strings.Index(key, "[")
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}

	op := key[open+1 : len(key)-1]
	if !slices.Contains(operators, op) {
		return key, ""
	}

	return key[:open], op
}

func splitValues(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ParseConditions translates URL query parameters into condition functions.
// Filter fields are allow listed; an unknown field or a malformed numeric
// bound yields an error rather than being passed through to the store.
// The select and populate parameters are response shaping concerns and are
// handled by the caller.
func ParseConditions(params map[string][]string) ([]ConditionFunc, error) {
	conditions := make([]ConditionFunc, 0)

	numeric := func(field, op string, v []string, f func(string, float64) ConditionFunc, in func([]float64) ConditionFunc) error {
		if op == "in" {
			values := make([]float64, 0, len(v))
			for _, s := range splitValues(v) {
				value, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("invalid numeric value %q for %s", s, field)
				}
				values = append(values, value)
			}
			conditions = append(conditions, in(values))
			return nil
		}

		value, err := strconv.ParseFloat(v[0], 64)
		if err != nil {
			return fmt.Errorf("invalid numeric value %q for %s", v[0], field)
		}
		if op == "" {
			op = "eq"
		}
		conditions = append(conditions, f(op, value))
		return nil
	}

	for k, v := range params {
		if len(v) == 0 || v[0] == "" {
			continue
		}

		field, op := splitKey(k)

		switch strings.ToLower(field) {
		case "name":
			if op == "in" {
				conditions = append(conditions, WithNameIn(splitValues(v)))
			} else {
				conditions = append(conditions, WithName(v[0]))
			}
		case "title":
			if op == "in" {
				conditions = append(conditions, WithTitleIn(splitValues(v)))
			} else {
				conditions = append(conditions, WithTitle(v[0]))
			}
		case "careers":
			conditions = append(conditions, WithCareers(splitValues(v)))
		case "minimumskill":
			conditions = append(conditions, WithMinimumSkill(splitValues(v)))
		case "housing":
			b, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithHousing(b))
		case "jobassistance":
			b, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithJobAssistance(b))
		case "jobguarantee":
			b, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithJobGuarantee(b))
		case "acceptgi":
			b, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithAcceptGI(b))
		case "scholarshipavailable":
			b, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithScholarship(b))
		case "averagecost":
			if err := numeric(field, op, v, WithAverageCost, WithAverageCostIn); err != nil {
				return nil, err
			}
		case "averagerating":
			if err := numeric(field, op, v, WithAverageRating, WithAverageRatingIn); err != nil {
				return nil, err
			}
		case "tuition":
			if err := numeric(field, op, v, WithTuition, WithTuitionIn); err != nil {
				return nil, err
			}
		case "weeks":
			if err := numeric(field, op, v, WithWeeks, WithWeeksIn); err != nil {
				return nil, err
			}
		case "bootcamp":
			conditions = append(conditions, WithBootcampID(v[0]))
		case "sort":
			for _, token := range splitValues(v) {
				desc := strings.HasPrefix(token, "-")
				conditions = append(conditions, WithSort(strings.TrimPrefix(token, "-"), desc))
			}
		case "page":
			if page, err := strconv.Atoi(v[0]); err == nil {
				conditions = append(conditions, WithPage(page))
			}
		case "limit":
			if limit, err := strconv.Atoi(v[0]); err == nil {
				conditions = append(conditions, WithLimit(limit))
			}
		case "select", "populate":
			// response shaping, not a filter
		default:
			return nil, fmt.Errorf("unknown query parameter %s", k)
		}
	}

	return conditions, nil
}
