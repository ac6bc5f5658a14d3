package retrieval

import "strings"

// IntentRule maps a set of intent keywords to the canonical route of one
// application area. Rules are evaluated in order; a rule listed in another
// rule's SuppressedBy only fires when none of those rules fired first, which
// keeps broad detectors (contacts/chat) from claiming queries that a narrower
// detector (event invites) already owns.
type IntentRule struct {
	Name         string
	Keywords     []string
	TargetRoute  string
	Bonus        int
	SuppressedBy []string
}

// DeepLinkHint marks query terms that name a sub-feature living behind a
// route query parameter. Entries whose route carries that parameter get the
// specificity bonus, so a precise question beats the feature's overview entry.
type DeepLinkHint struct {
	Terms      []string
	RouteParam string
}

// Matches reports whether the rule's keyword set hits the lowercased raw query.
func (r IntentRule) Matches(rawQuery string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(rawQuery, kw) {
			return true
		}
	}
	return false
}

// buildIntentRules builds the declarative intent table. Narrow detectors come
// before the broad ones they suppress.
func buildIntentRules() []IntentRule {
	return []IntentRule{
		{
			Name:        "event_create",
			Keywords:    []string{"create event", "new event", "invite", "rsvp", "invitation", "مناسبة", "دعوة"},
			TargetRoute: "/events/create",
			Bonus:       intentBonus,
		},
		{
			Name:        "contact_us",
			Keywords:    []string{"contact us", "customer support", "feedback", "report a problem", "تواصل معنا"},
			TargetRoute: "/contact-us",
			Bonus:       intentBonus,
		},
		{
			Name:         "contacts",
			Keywords:     []string{"contact", "message", "chat", "friend", "جهات الاتصال", "رسالة", "محادثة"},
			TargetRoute:  "/contacts",
			Bonus:        intentBonus,
			SuppressedBy: []string{"event_create", "contact_us"},
		},
		{
			Name:        "tasks",
			Keywords:    []string{"task", "todo", "to-do", "reminder", "مهمة", "مهام", "تذكير"},
			TargetRoute: "/tasks",
			Bonus:       intentBonus,
		},
		{
			Name:        "calendar",
			Keywords:    []string{"calendar", "schedule", "agenda", "تقويم", "جدول"},
			TargetRoute: "/calendar",
			Bonus:       intentBonus,
		},
		{
			Name:        "journal",
			Keywords:    []string{"journal", "diary", "mood", "يوميات", "مذكرات"},
			TargetRoute: "/journal",
			Bonus:       intentBonus,
		},
		{
			Name:        "music",
			Keywords:    []string{"music", "song", "playlist", "موسيقى", "أغنية"},
			TargetRoute: "/music",
			Bonus:       intentBonus,
		},
		{
			Name:        "word_games",
			Keywords:    []string{"word game", "letter game", "لعبة كلمات"},
			TargetRoute: "/games?tab=word",
			Bonus:       intentBonus,
		},
		{
			Name:         "games",
			Keywords:     []string{"game", "play", "لعبة", "ألعاب"},
			TargetRoute:  "/games",
			Bonus:        intentBonus,
			SuppressedBy: []string{"word_games"},
		},
		{
			Name:        "recording",
			Keywords:    []string{"record", "recording", "transcribe", "transcription", "voice note", "تسجيل", "تفريغ"},
			TargetRoute: "/voice",
			Bonus:       intentBonus,
		},
		{
			Name:        "fitness",
			Keywords:    []string{"fitness", "health", "workout", "steps", "لياقة", "صحة"},
			TargetRoute: "/fitness",
			Bonus:       intentBonus,
		},
		{
			Name:        "account",
			Keywords:    []string{"account", "profile", "password", "sign in", "login", "حساب", "ملف شخصي"},
			TargetRoute: "/account",
			Bonus:       intentBonus,
		},
		{
			Name:        "settings",
			Keywords:    []string{"settings", "preferences", "notification", "theme", "إعدادات"},
			TargetRoute: "/settings",
			Bonus:       intentBonus,
		},
		{
			Name:        "dashboard",
			Keywords:    []string{"dashboard", "home screen", "widget", "لوحة التحكم"},
			TargetRoute: "/dashboard",
			Bonus:       intentBonus,
		},
		{
			Name:        "background_removal",
			Keywords:    []string{"background removal", "remove background", "إزالة الخلفية"},
			TargetRoute: "/tools?tab=background-removal",
			Bonus:       intentBonus,
		},
		{
			Name:        "study",
			Keywords:    []string{"study", "flashcard", "quiz", "دراسة", "مذاكرة"},
			TargetRoute: "/study",
			Bonus:       intentBonus,
		},
		{
			Name:        "video_search",
			Keywords:    []string{"youtube", "video search", "بحث فيديو"},
			TargetRoute: "/search?tab=video",
			Bonus:       intentBonus,
		},
		{
			Name:         "web_search",
			Keywords:     []string{"web search", "search the web", "بحث في الويب"},
			TargetRoute:  "/search",
			Bonus:        intentBonus,
			SuppressedBy: []string{"video_search"},
		},
		{
			Name:        "image_generation",
			Keywords:    []string{"generate image", "image generation", "make a picture", "توليد صورة"},
			TargetRoute: "/image",
			Bonus:       intentBonus,
		},
		{
			Name:        "presentations",
			Keywords:    []string{"presentation", "slides", "slide deck", "عرض تقديمي"},
			TargetRoute: "/presentations",
			Bonus:       intentBonus,
		},
		{
			Name:        "diagrams",
			Keywords:    []string{"diagram", "flowchart", "mind map", "مخطط"},
			TargetRoute: "/diagrams",
			Bonus:       intentBonus,
		},
		{
			Name:        "help",
			Keywords:    []string{"user guide", "manual", "help center", "دليل الاستخدام"},
			TargetRoute: "/help",
			Bonus:       intentBonus,
		},
	}
}

// buildDeepLinkHints builds the specificity table for sub-features reachable
// only through a deep link.
func buildDeepLinkHints() []DeepLinkHint {
	return []DeepLinkHint{
		{
			Terms:      []string{"translator", "translate", "ترجمة", "مترجم"},
			RouteParam: "tab=translate",
		},
		{
			Terms:      []string{"word", "letters", "كلمات"},
			RouteParam: "tab=word",
		},
		{
			Terms:      []string{"background", "خلفية"},
			RouteParam: "tab=background-removal",
		},
		{
			Terms:      []string{"video", "youtube", "فيديو"},
			RouteParam: "tab=video",
		},
	}
}

// firedRules evaluates the table against the lowercased raw query, applying
// suppression in declaration order. Returns the rules that fired.
func firedRules(rules []IntentRule, rawQuery string) []IntentRule {
	firedByName := make(map[string]bool, len(rules))
	var fired []IntentRule

	for _, rule := range rules {
		if !rule.Matches(rawQuery) {
			continue
		}
		suppressed := false
		for _, name := range rule.SuppressedBy {
			if firedByName[name] {
				suppressed = true
				break
			}
		}
		if suppressed {
			continue
		}
		firedByName[rule.Name] = true
		fired = append(fired, rule)
	}

	return fired
}
