package tag

// Tag labels form a closed vocabulary. Every component that attaches a tag to
// a token uses one of these eight values.
const (
	Brand     = "brand"
	Product   = "product"
	Audience  = "audience"
	Scenario  = "scenario"
	Color     = "color"
	Size      = "size"
	Feature   = "feature"
	Attribute = "attribute"
)

// All lists the tag vocabulary in priority order. The order doubles as the
// tie-breaker when two candidates for different tags carry equal confidence.
var All = []string{Brand, Product, Audience, Scenario, Color, Size, Feature, Attribute}

// priority maps a tag to its rank in All; unknown tags sort last.
var priority = func() map[string]int {
	m := make(map[string]int, len(All))
	for i, t := range All {
		m[t] = i
	}
	return m
}()

// Candidate is one possible tag for a token. Candidates are never mutated
// after creation, only ranked.
type Candidate struct {
	Tag        string
	Confidence float64
	Method     string // dict, dict_normalized, pattern, rule, heuristic, stopword
	Source     string
}

// Result is the resolved tagging of a single token. Tags holds at most two
// entries with the primary tag first.
type Result struct {
	Token      string
	Tags       []string
	Primary    string
	Confidence float64
	Method     string
	Candidates []Candidate
}

// compatibility lists tag pairs whose coexistence on one token is explicitly
// allowed or forbidden. Keys are ordered by priority rank; unlisted pairs
// default to compatible.
var compatibility = map[[2]string]bool{
	{Color, Size}:        false,
	{Brand, Size}:        false,
	{Brand, Color}:       false,
	{Product, Feature}:   true,
	{Audience, Scenario}: true,
	{Product, Attribute}: true,
	{Feature, Attribute}: true,
}

// Compatible reports whether two tags may appear together on one token.
func Compatible(a, b string) bool {
	if a == b {
		return true
	}
	key := [2]string{a, b}
	if priority[b] < priority[a] {
		key = [2]string{b, a}
	}
	if v, ok := compatibility[key]; ok {
		return v
	}
	return true
}

// Less orders tags by vocabulary priority.
func Less(a, b string) bool {
	return priority[a] < priority[b]
}
