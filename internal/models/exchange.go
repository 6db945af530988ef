package models

// ExchangeSlot is one host-university slot in the strategy room. The platform
// API omits nested records and lists for slots nobody has applied to yet, so
// payloads arrive partially null and must be normalized before they reach the
// browser.
type ExchangeSlot struct {
	ID             int64            `json:"id"`
	University     *University      `json:"university"`
	Country        string           `json:"country"`
	Capacity       int              `json:"capacity"`
	ApplicantCount int              `json:"applicant_count"`
	Semester       string           `json:"semester"`
	Applicants     []ApplicantScore `json:"applicants"`
}

type University struct {
	Name     string `json:"name"`
	NameEn   string `json:"name_en"`
	Region   string `json:"region"`
	LogoURL  string `json:"logo_url"`
	Homepage string `json:"homepage"`
}

// ApplicantScore is a single anonymized applicant row for a slot.
type ApplicantScore struct {
	Nickname   string   `json:"nickname"`
	GPA        *float64 `json:"gpa"`
	LangScore  *float64 `json:"lang_score"`
	TotalScore *float64 `json:"total_score"`
	Rank       int      `json:"rank"`
	IsMine     bool     `json:"is_mine"`
}

// Normalize fills the defaults the API leaves null: a missing university
// becomes a zero-valued record, a missing applicant list becomes an empty
// slice, and nil score fields become explicit zeros so the client never has
// to null-check.
func (s *ExchangeSlot) Normalize() {
	if s.University == nil {
		s.University = &University{}
	}

	if s.Applicants == nil {
		s.Applicants = []ApplicantScore{}
	}

	for i := range s.Applicants {
		s.Applicants[i].Normalize()
	}
}

// Normalize replaces nil score pointers with zero values.
func (a *ApplicantScore) Normalize() {
	if a.GPA == nil {
		v := 0.0
		a.GPA = &v
	}

	if a.LangScore == nil {
		v := 0.0
		a.LangScore = &v
	}

	if a.TotalScore == nil {
		v := 0.0
		a.TotalScore = &v
	}
}

// NormalizeSlots normalizes a whole listing, mapping a nil listing to an
// empty one.
func NormalizeSlots(slots []ExchangeSlot) []ExchangeSlot {
	if slots == nil {
		return []ExchangeSlot{}
	}

	for i := range slots {
		slots[i].Normalize()
	}

	return slots
}
