package worksheet

// TypeInfo describes a question type for display and prompting.
type TypeInfo struct {
	Type        QuestionType
	Label       string
	Description string

	// Prompt is the phrase used when asking a model to write this type.
	Prompt string
}

var typeInfos = map[QuestionType]TypeInfo{
	TypeMultipleChoice: {
		Label:       "Trắc nghiệm",
		Description: "Chọn đáp án đúng (A, B, C, D)",
		Prompt:      "trắc nghiệm (4 lựa chọn A, B, C, D, chỉ 1 đáp án đúng)",
	},
	TypeFillBlank: {
		Label:       "Điền khuyết",
		Description: "Điền từ/cụm từ còn thiếu vào chỗ trống",
		Prompt:      `điền khuyết (dùng "___" cho chỗ trống)`,
	},
	TypeMatching: {
		Label:       "Nối cột",
		Description: "Ghép thông tin giữa hai cột tương ứng",
		Prompt:      "nối cột (tạo cặp nối cột A và cột B)",
	},
	TypeTrueFalse: {
		Label:       "Đúng/Sai",
		Description: "Xác định tính chính xác của nhận định",
		Prompt:      `đúng/sai (nhận định kèm options ["Đúng", "Sai"])`,
	},
	TypeShortAnswer: {
		Label:       "Tự luận ngắn",
		Description: "Trả lời ngắn gọn theo yêu cầu",
		Prompt:      "tự luận ngắn (câu trả lời ngắn gọn)",
	},
	TypeFindError: {
		Label:       "Tìm lỗi sai",
		Description: "Phát hiện và sửa nội dung chưa chính xác",
		Prompt:      "tìm lỗi sai (đưa nội dung có lỗi, yêu cầu phát hiện và sửa)",
	},
	TypeSituation: {
		Label:       "Tình huống – Giải quyết vấn đề",
		Description: "Đưa ra tình huống thực tế",
		Prompt:      "tình huống – giải quyết vấn đề (đưa tình huống thực tế, yêu cầu đề xuất phương án)",
	},
	TypeMindMap: {
		Label:       "Sơ đồ tư duy",
		Description: "Hoàn thành sơ đồ còn thiếu hoặc tự thiết kế",
		Prompt:      "sơ đồ tư duy (yêu cầu hoàn thành hoặc thiết kế sơ đồ logic)",
	},
	TypeRolePlay: {
		Label:       "Nhập vai",
		Description: "Đóng vai nhân vật hoặc chuyên gia",
		Prompt:      "nhập vai (đóng vai nhân vật/chuyên gia viết bài/nhật ký/phỏng vấn)",
	},
	TypeChartAnalysis: {
		Label:       "Phân tích bảng / biểu đồ",
		Description: "Quan sát số liệu và rút ra nhận xét",
		Prompt:      "phân tích bảng/biểu đồ (đưa số liệu, yêu cầu nhận xét và phân tích)",
	},
	TypeCompare: {
		Label:       "So sánh – Đối chiếu",
		Description: "Chỉ ra điểm giống và khác giữa hai nội dung",
		Prompt:      "so sánh – đối chiếu (chỉ ra điểm giống/khác giữa hai nội dung)",
	},
	TypeExtendedWriting: {
		Label:       "Viết mở rộng",
		Description: "Viết đoạn nghị luận hoặc cảm nhận sâu hơn",
		Prompt:      "viết mở rộng (viết đoạn nghị luận hoặc cảm nhận)",
	},
	TypeMiniProject: {
		Label:       "Dự án nhỏ (Mini Project)",
		Description: "Tìm hiểu chủ đề trong 1–3 ngày",
		Prompt:      "dự án nhỏ (đề bài dự án 1-3 ngày, có sản phẩm cụ thể)",
	},
	TypeCardMatch: {
		Label:       "Ghép thẻ kiến thức",
		Description: "Cắt rời nội dung → học sinh sắp xếp logic",
		Prompt:      "ghép thẻ kiến thức (sắp xếp logic các thẻ thông tin)",
	},
	TypeSelfAssess: {
		Label:       "Tự đánh giá",
		Description: "Học sinh tự chấm mức độ hiểu bài",
		Prompt:      "tự đánh giá (câu hỏi tự chấm mức độ hiểu bài)",
	},
}

// Info returns display metadata for the type. Unknown types get their raw
// tag as label.
func (t QuestionType) Info() TypeInfo {
	info, ok := typeInfos[t]
	if !ok {
		return TypeInfo{Type: t, Label: string(t), Prompt: string(t)}
	}
	info.Type = t
	return info
}

// Label returns the Vietnamese display label of the type.
func (t QuestionType) Label() string {
	return t.Info().Label
}

// Label returns the Vietnamese display label of the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Dễ"
	case DifficultyMedium:
		return "Trung bình"
	case DifficultyHard:
		return "Khó"
	default:
		return string(d)
	}
}

// Label returns the Vietnamese display label of the grade level.
func (g GradeLevel) Label() string {
	switch g {
	case GradePrimary:
		return "Tiểu học"
	case GradeSecondary:
		return "THCS"
	case GradeHighSchool:
		return "THPT"
	default:
		return string(g)
	}
}

// True/false option strings.
const (
	OptionTrue  = "Đúng"
	OptionFalse = "Sai"
)
