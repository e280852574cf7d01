package worksheet

import "time"

// Samples returns the demo worksheets used by `edusheet seed`. Timestamps
// are relative to now.
func Samples(now time.Time) []Worksheet {
	math := []Question{
		{
			ID:            "demo_1",
			Content:       `Kết quả của phép tính $15 \times 4 + 20$ là bao nhiêu?`,
			Type:          TypeMultipleChoice,
			Options:       []string{"60", "80", "100", "75"},
			CorrectAnswer: "80",
			Explanation:   `$15 \times 4 = 60$, sau đó $60 + 20 = 80$`,
			Difficulty:    DifficultyEasy,
		},
		{
			ID:            "demo_2",
			Content:       `Điền số thích hợp vào chỗ trống: $\frac{3}{4} + \text{___} = 1$`,
			Type:          TypeFillBlank,
			CorrectAnswer: "1/4",
			Explanation:   `$1 - \frac{3}{4} = \frac{4}{4} - \frac{3}{4} = \frac{1}{4}$`,
			Difficulty:    DifficultyEasy,
		},
		{
			ID:            "demo_3",
			Content:       "Nối các hình với số cạnh tương ứng:",
			Type:          TypeMatching,
			CorrectAnswer: "Tam giác - 3 cạnh, Tứ giác - 4 cạnh, Ngũ giác - 5 cạnh, Lục giác - 6 cạnh",
			MatchingPairs: []MatchingPair{
				{Left: "Tam giác", Right: "3 cạnh"},
				{Left: "Tứ giác", Right: "4 cạnh"},
				{Left: "Ngũ giác", Right: "5 cạnh"},
				{Left: "Lục giác", Right: "6 cạnh"},
			},
			Difficulty: DifficultyEasy,
		},
		{
			ID:            "demo_4",
			Content:       `Đúng hay sai: "Tổng ba góc trong một tam giác bằng $180°$"`,
			Type:          TypeTrueFalse,
			Options:       []string{OptionTrue, OptionFalse},
			CorrectAnswer: OptionTrue,
			Explanation:   "Đây là định lý cơ bản trong hình học phẳng",
			Difficulty:    DifficultyEasy,
		},
	}

	english := []Question{
		{
			ID:            "demo_5",
			Content:       "Choose the correct form: She ___ to school every day.",
			Type:          TypeMultipleChoice,
			Options:       []string{"go", "goes", "going", "went"},
			CorrectAnswer: "goes",
			Explanation:   `Subject "She" requires third person singular form "goes" in present simple tense.`,
			Difficulty:    DifficultyEasy,
		},
		{
			ID:            "demo_6",
			Content:       "Fill in the blank: I have ___ finished my homework.",
			Type:          TypeFillBlank,
			CorrectAnswer: "already",
			Explanation:   `"Already" is used with present perfect tense to indicate completion.`,
			Difficulty:    DifficultyMedium,
		},
		{
			ID:            "demo_7",
			Content:       "Nối từ tiếng Anh với nghĩa tiếng Việt:",
			Type:          TypeMatching,
			CorrectAnswer: "Beautiful - Đẹp, Intelligent - Thông minh, Brave - Dũng cảm, Kind - Tốt bụng",
			MatchingPairs: []MatchingPair{
				{Left: "Beautiful", Right: "Đẹp"},
				{Left: "Intelligent", Right: "Thông minh"},
				{Left: "Brave", Right: "Dũng cảm"},
				{Left: "Kind", Right: "Tốt bụng"},
			},
			Difficulty: DifficultyEasy,
		},
	}

	day := 24 * time.Hour
	return []Worksheet{
		{
			ID:          "sample_1",
			Title:       "Ôn tập Toán lớp 5 - Phép tính và Hình học",
			SubjectID:   "math",
			SubjectName: "Toán học",
			GradeLevel:  GradePrimary,
			SchoolName:  "Trường Tiểu học Nguyễn Trãi",
			ClassName:   "Lớp 5A1",
			Questions:   math,
			AnswerKey:   BuildAnswerKey(math),
			Tags:        []string{"ôn-tập", "học-kỳ-1"},
			CreatedAt:   now.Add(-day),
			UpdatedAt:   now.Add(-day),
		},
		{
			ID:          "sample_2",
			Title:       "English Grammar - Present Tenses",
			SubjectID:   "english",
			SubjectName: "Tiếng Anh",
			GradeLevel:  GradeSecondary,
			SchoolName:  "Trường THCS Lê Lợi",
			ClassName:   "Lớp 7A2",
			Questions:   english,
			AnswerKey:   BuildAnswerKey(english),
			Tags:        []string{"grammar", "present-tense"},
			CreatedAt:   now.Add(-2 * day),
			UpdatedAt:   now.Add(-2 * day),
		},
	}
}
