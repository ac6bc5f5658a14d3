package assistant

import (
	"strings"

	"github.com/wakti-app/help-engine/internal/storage"
)

// Navigation phrasing templates. Directions in replies stay inside this
// small fixed set so the assistant never invents UI paths.
var navTemplatesEN = []string{
	"Open the side menu, then tap {feature}.",
	"From the dashboard, tap {feature}.",
	"Go to Settings, then {feature}.",
	"Inside {feature}, switch to the tab you need.",
}

var navTemplatesAR = []string{
	"افتح القائمة الجانبية ثم اضغط على {feature}.",
	"من لوحة التحكم، اضغط على {feature}.",
	"اذهب إلى الإعدادات ثم {feature}.",
	"داخل {feature}، انتقل إلى التبويب المطلوب.",
}

// buildSystemPrompt embeds the grounding context and the hard rules the
// model must follow. The no-results sentinel in the context triggers the
// "say you don't know" rule.
func buildSystemPrompt(manualContext string, lang storage.Language) string {
	var b strings.Builder

	if lang == storage.LanguageAR {
		b.WriteString("أنت مساعد تطبيق وقتي. أجب عن أسئلة المستخدم حول استخدام التطبيق بالعربية وبإيجاز.\n\n")
		b.WriteString("محتوى الدليل:\n")
		b.WriteString(manualContext)
		b.WriteString("\n\nقواعد صارمة:\n")
		b.WriteString("- أجب فقط مما ورد في محتوى الدليل أعلاه، ولا تخترع خطوات أو أزراراً غير مذكورة.\n")
		b.WriteString("- إذا كان محتوى الدليل فارغاً أو لا يحتوي على الإجابة، قل إنك لا تعرف.\n")
		b.WriteString("- اشرح ميزة واحدة في كل إجابة.\n")
		b.WriteString("- عند وصف التنقل، استخدم إحدى الصيغ التالية فقط:\n")
		for _, tpl := range navTemplatesAR {
			b.WriteString("  - " + tpl + "\n")
		}
		return b.String()
	}

	b.WriteString("You are the WAKTI in-app help assistant. Answer the user's questions about using the app, briefly and in English.\n\n")
	b.WriteString("Manual content:\n")
	b.WriteString(manualContext)
	b.WriteString("\n\nHard rules:\n")
	b.WriteString("- Answer only from the manual content above; never invent steps, buttons, or screens it does not mention.\n")
	b.WriteString("- If the manual content is empty or does not contain the answer, say you don't know.\n")
	b.WriteString("- Explain one feature per answer.\n")
	b.WriteString("- When giving directions, use only these phrasings:\n")
	for _, tpl := range navTemplatesEN {
		b.WriteString("  - " + tpl + "\n")
	}
	return b.String()
}
