package questiongen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/edusheet/internal/worksheet"
)

const systemPrompt = "Bạn là chuyên gia giáo dục Việt Nam, soạn phiếu bài tập cho học sinh phổ thông."

// typeRules are the per-type writing rules, in the order types are listed.
var typeRules = []struct {
	types []worksheet.QuestionType
	rule  string
}{
	{[]worksheet.QuestionType{worksheet.TypeMultipleChoice}, "Với trắc nghiệm: 4 lựa chọn trong options, chỉ 1 đáp án đúng, correctAnswer trùng nguyên văn một lựa chọn"},
	{[]worksheet.QuestionType{worksheet.TypeTrueFalse}, `Với đúng/sai: options là ["Đúng", "Sai"], correctAnswer là "Đúng" hoặc "Sai"`},
	{[]worksheet.QuestionType{worksheet.TypeFillBlank}, `Với điền khuyết: dùng dấu "___" cho chỗ trống, correctAnswer là từ cần điền`},
	{[]worksheet.QuestionType{worksheet.TypeMatching, worksheet.TypeCardMatch}, "Với nối cột/ghép thẻ: tạo cặp nối tương ứng trong matchingPairs"},
	{[]worksheet.QuestionType{worksheet.TypeFindError}, "Với tìm lỗi sai: nội dung câu hỏi chứa lỗi, correctAnswer là bản sửa đúng"},
	{[]worksheet.QuestionType{worksheet.TypeSituation}, "Với tình huống: đưa tình huống thực tế, correctAnswer là phương án giải quyết"},
	{[]worksheet.QuestionType{worksheet.TypeMindMap}, "Với sơ đồ tư duy: mô tả cấu trúc sơ đồ cần hoàn thành"},
	{[]worksheet.QuestionType{worksheet.TypeRolePlay}, "Với nhập vai: mô tả vai trò và yêu cầu viết"},
	{[]worksheet.QuestionType{worksheet.TypeChartAnalysis}, "Với phân tích bảng/biểu đồ: đưa số liệu trong content, yêu cầu nhận xét"},
	{[]worksheet.QuestionType{worksheet.TypeCompare}, "Với so sánh: chỉ rõ 2 đối tượng cần so sánh"},
	{[]worksheet.QuestionType{worksheet.TypeExtendedWriting}, "Với viết mở rộng: đưa đề bài rõ ràng"},
	{[]worksheet.QuestionType{worksheet.TypeMiniProject}, "Với dự án nhỏ: mô tả yêu cầu dự án, thời gian, sản phẩm"},
	{[]worksheet.QuestionType{worksheet.TypeSelfAssess}, "Với tự đánh giá: câu hỏi rubric tự chấm"},
}

// buildUserMessage renders the generation prompt. Only rules for the
// requested types are included.
func buildUserMessage(in Input) string {
	prompts := make([]string, len(in.Types))
	for i, t := range in.Types {
		prompts[i] = t.Info().Prompt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hãy tạo %d câu hỏi bài tập dạng: %s.\n\n", in.Count, strings.Join(prompts, ", "))
	if in.Subject.Name != "" {
		fmt.Fprintf(&b, "Môn học: %s\n", in.Subject.Name)
	}
	if in.Grade != "" {
		fmt.Fprintf(&b, "Cấp học: %s\n", in.Grade.Label())
	}
	fmt.Fprintf(&b, "Nội dung/chủ đề: %s\n\n", in.Content)
	fmt.Fprintf(&b, "CHẾ ĐỘ TẠO BÀI: %s\n\n", in.Mode.Instruction())

	b.WriteString("Yêu cầu:\n")
	fmt.Fprintf(&b, "- Độ khó: %s\n", strings.ToLower(in.Difficulty.Label()))
	fmt.Fprintf(&b, "- Ngôn ngữ: %s\n", in.Language.PromptName())
	b.WriteString("- Mỗi câu hỏi phải rõ ràng, chính xác\n")
	for _, r := range typeRules {
		if containsAny(in.Types, r.types) {
			fmt.Fprintf(&b, "- %s\n", r.rule)
		}
	}
	b.WriteString("- Thêm giải thích ngắn cho mỗi đáp án\n")
	b.WriteString("- QUAN TRỌNG: Nếu có công thức toán học, hãy viết dạng LaTeX ($...$ inline, $$...$$ block)\n\n")

	fmt.Fprintf(&b, "Trả về JSON dạng {\"questions\": [...]}. Trường type nhận một trong: %s. ", joinTypes(in.Types))
	fmt.Fprintf(&b, "Trường difficulty mặc định là %q. ", in.Difficulty)
	b.WriteString("Trường matchingPairs chỉ dùng cho matching/card_match. Trường options chỉ dùng cho multiple_choice và true_false.")
	return b.String()
}

// suggestContentLimit is how much source text the suggestion prompt sees.
const suggestContentLimit = 2000

func buildSuggestMessage(content string, subject worksheet.Subject) string {
	var b strings.Builder
	b.WriteString("Hãy phân tích nội dung/tài liệu sau và đề xuất các dạng phiếu học tập PHÙ HỢP NHẤT.\n\n")
	fmt.Fprintf(&b, "Môn học: %s\n", subject.Name)
	fmt.Fprintf(&b, "Nội dung: %s\n\n", truncateRunes(content, suggestContentLimit))
	fmt.Fprintf(&b, "Danh sách %d dạng phiếu:\n", len(worksheet.AllTypes))
	for _, t := range worksheet.AllTypes {
		info := t.Info()
		fmt.Fprintf(&b, "- %s: %s – %s\n", t, info.Label, info.Description)
	}
	b.WriteString("\nHãy chọn 3-5 dạng phù hợp nhất với nội dung và môn học trên. Trả về JSON dạng {\"types\": [\"multiple_choice\", ...]}.")
	return b.String()
}

func containsAny(have, want []worksheet.QuestionType) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func joinTypes(types []worksheet.QuestionType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
