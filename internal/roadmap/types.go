package roadmap

// Input is the onboarding answers that parameterize roadmap generation.
type Input struct {
	Topic      string `json:"topic" binding:"required"`
	Duration   string `json:"duration" binding:"required"`
	Goal       string `json:"goal"`
	SkillLevel string `json:"skillLevel"`
	Preference string `json:"preference"`
}

// Document is the generated course structure before persistence.
type Document struct {
	CourseName string          `json:"courseName"`
	Duration   string          `json:"duration"`
	Milestones []MilestoneSpec `json:"milestones"`
}

// MilestoneSpec is one unit of the roadmap as generated.
type MilestoneSpec struct {
	Title     string         `json:"title"`
	Order     int            `json:"order"`
	Resources Resources      `json:"resources"`
	Quiz      []QuizQuestion `json:"quiz"`
}

// Resources groups the learning material links for a milestone.
// All fields are optional; zero or more may be present.
type Resources struct {
	Website    string  `json:"website,omitempty"`
	YouTube    []Video `json:"youtube,omitempty"`
	Additional []Link  `json:"additional,omitempty"`
}

// Video is a YouTube resource.
type Video struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// Link is a website, article, or documentation resource.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// QuizQuestion is one multiple-choice question. Correct is the 0-based
// index into Options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// Usable reports whether the document carries enough structure to persist:
// a course name, at least one milestone, and every quiz question answerable
// from its own options. JSON Schema cannot relate correct to the options
// length, so the bound is checked here after decode.
func (d *Document) Usable() bool {
	if d == nil || d.CourseName == "" || len(d.Milestones) == 0 {
		return false
	}
	for _, m := range d.Milestones {
		for _, q := range m.Quiz {
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				return false
			}
		}
	}
	return true
}
