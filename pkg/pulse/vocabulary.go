package pulse

import "strings"

// Quality is a recognised pulse quality. The set is closed: raw palpation
// text only becomes a Quality through Interpret.
type Quality int

const (
	Floating Quality = iota + 1
	Sinking
	Slow
	Rapid
	Deficient
	Excess
	Slippery
	Rough
	Wiry
	Thin
	Surging
	Faint
	Tight
	Moderate
	Big
	Weak
	Forceful
	Empty
	Absent
	NearlyAbsent
	Expiring
)

type term struct {
	quality      Quality
	token        string
	significance string
	// emptiness marks tokens that, read at the deep level, mean the root is gone.
	emptiness bool
}

// vocabulary is ordered: multi-character tokens precede the single
// characters they contain so Interpret reports them first.
var vocabulary = []term{
	{NearlyAbsent, "几无", "脉气将竭，元气垂危", true},
	{Expiring, "欲绝", "阳气欲脱，元气衰竭", true},
	{Forceful, "有力", "正气尚充", false},
	{Floating, "浮", "病位在表，或虚阳外浮", false},
	{Sinking, "沉", "病位在里", false},
	{Slow, "迟", "寒证，阳气不足", false},
	{Rapid, "数", "热证", false},
	{Deficient, "虚", "正气不足", true},
	{Excess, "实", "邪气盛实", false},
	{Slippery, "滑", "痰湿、食积或妊娠", false},
	{Rough, "涩", "气滞血瘀或精血亏少", false},
	{Wiry, "弦", "肝胆病、痛证或少阳病", false},
	{Thin, "细", "气血两虚或湿证", false},
	{Surging, "洪", "气分热盛", false},
	{Faint, "微", "阳气衰微", false},
	{Tight, "紧", "寒邪束表或痛证", false},
	{Moderate, "缓", "营卫不和或脾虚湿困", false},
	{Big, "大", "邪盛病进，或虚阳浮越", false},
	{Weak, "弱", "气血不足", true},
	{Empty, "空", "元气亏虚，根本不固", true},
	{Absent, "无", "脉根不显", true},
}

// String returns the Chinese token of the quality.
func (q Quality) String() string {
	if t, ok := lookup(q); ok {
		return t.token
	}
	return ""
}

// Significance returns the clinical meaning of the quality.
func (q Quality) Significance() string {
	if t, ok := lookup(q); ok {
		return t.significance
	}
	return ""
}

// Emptiness reports whether the quality is an emptiness indicator.
func (q Quality) Emptiness() bool {
	t, ok := lookup(q)
	return ok && t.emptiness
}

func lookup(q Quality) (term, bool) {
	for _, t := range vocabulary {
		if t.quality == q {
			return t, true
		}
	}
	return term{}, false
}

// Interpret maps free palpation text onto the closed quality set using
// keyword containment. Qualities are returned in vocabulary order, once each.
func Interpret(text string) []Quality {
	if text == "" {
		return nil
	}
	var out []Quality
	for _, t := range vocabulary {
		if strings.Contains(text, t.token) {
			out = append(out, t.quality)
		}
	}
	return out
}

// EmptinessIndicated reports whether text contains any emptiness indicator.
func EmptinessIndicated(text string) bool {
	for _, q := range Interpret(text) {
		if q.Emptiness() {
			return true
		}
	}
	return false
}

// Has reports whether q appears in qs.
func Has(qs []Quality, q Quality) bool {
	for _, v := range qs {
		if v == q {
			return true
		}
	}
	return false
}

// Tokens renders qualities as their Chinese tokens.
func Tokens(qs []Quality) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.String())
	}
	return out
}
