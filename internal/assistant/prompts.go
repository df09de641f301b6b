package assistant

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/erazemk/shouna/internal/model"
)

// AnalyzeInstruction accompanies the photo sent for analysis.
const AnalyzeInstruction = "分析这张图片并提取物品详情，用于家庭收纳系统。请务必使用中文回答，分类要准确。"

// Replies used when advice cannot be obtained.
const (
	FallbackReply = "抱歉，我现在连接不到整理大脑，请稍后再试。"
	EmptyReply    = "我现在想不出什么好建议，稍微再问我一次吧！"
)

// MaxSummaryRunes caps the inventory summary included in advice prompts.
const MaxSummaryRunes = 500

// Field descriptions of the analysis record, shared by every provider's
// response schema.
var fieldDescriptions = map[string]string{
	"name":                 "物品的简短名称 (中文)",
	"category":             "通用分类 (例如：数码产品, 服装, 厨房用品, 书籍) (中文)",
	"description":          "关于物品外观和功能的简短描述 (中文)",
	"tags":                 "5个与物品相关的关键词标签 (中文)",
	"suggestedStorageType": "通常存放的位置类型 (例如：衣柜, 抽屉, 书架, 储物箱) (中文)",
}

// analysisFields lists the record fields in output order.
var analysisFields = []string{"name", "category", "description", "tags", "suggestedStorageType"}

// Summary renders items as "name (category)" joined by ", " and cut to
// MaxSummaryRunes.
func Summary(items []model.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s)", item.Name, item.Category))
	}
	s := strings.Join(parts, ", ")
	if utf8.RuneCountInString(s) <= MaxSummaryRunes {
		return s
	}
	return string([]rune(s)[:MaxSummaryRunes])
}

// AdvicePrompt builds the organizing-consultant prompt for a question.
func AdvicePrompt(question, summary string) string {
	return fmt.Sprintf(`你是一位专业的家庭收纳整理师（类似近藤麻理惠风格），语气温柔、鼓励人心。
用户的问题是: "%s"

这是用户目前拥有的一些物品摘要: %s

请提供一个简洁、友好且可操作的收纳建议（中文，150字以内）。使用Markdown格式。`, question, summary)
}
