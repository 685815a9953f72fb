package roadmap

import "fmt"

// MilestoneCountFor derives the milestone count from the course duration.
// Unrecognized durations get the default of 4.
func MilestoneCountFor(duration string) int {
	switch duration {
	case "1 week":
		return 3
	case "2 weeks":
		return 4
	case "4 weeks":
		return 5
	}
	return 4
}

// Synthetic builds a deterministic placeholder roadmap used when generation
// output cannot be recovered. The user still receives a usable course; the
// caller is responsible for flagging it as degraded.
func Synthetic(in Input) *Document {
	count := MilestoneCountFor(in.Duration)
	milestones := make([]MilestoneSpec, count)
	for i := range milestones {
		milestones[i] = MilestoneSpec{
			Title: fmt.Sprintf("%s - Milestone %d", in.Topic, i+1),
			Order: i + 1,
			Resources: Resources{
				Website: "https://developer.mozilla.org/en-US/docs/Web",
				YouTube: []Video{
					{Title: "Introduction Tutorial", Channel: "Educational Channel", URL: "https://youtube.com"},
				},
				Additional: []Link{
					{Title: "Documentation", URL: "https://docs.example.com", Type: "documentation"},
				},
			},
			Quiz: []QuizQuestion{
				{
					Question: fmt.Sprintf("What is the key concept in %s?", in.Topic),
					Options:  []string{"Option A", "Option B", "Option C", "Option D"},
					Correct:  0,
				},
				{
					Question: fmt.Sprintf("How do you implement %s?", in.Topic),
					Options:  []string{"Method 1", "Method 2", "Method 3", "Method 4"},
					Correct:  1,
				},
				{
					Question: fmt.Sprintf("What are best practices for %s?", in.Topic),
					Options:  []string{"Practice A", "Practice B", "Practice C", "Practice D"},
					Correct:  2,
				},
			},
		}
	}

	return &Document{
		CourseName: fmt.Sprintf("%s Learning Path", in.Topic),
		Duration:   in.Duration,
		Milestones: milestones,
	}
}
