package seed

import "sorta/cmd/internal/domain/entity"

// DefaultCategories is the fixed set a fresh install starts with. It is
// application policy: the store never seeds itself, the caller does.
func DefaultCategories() []*entity.Category {
	return []*entity.Category{
		{ID: "notiz", Name: "Notiz", Emoji: "📝", Color: "#6B7280"},
		{ID: "arbeit", Name: "Arbeit", Emoji: "🏢", Color: "#3B82F6"},
		{ID: "idee", Name: "Idee", Emoji: "💡", Color: "#F59E0B"},
		{ID: "einkaufen", Name: "Einkaufen", Emoji: "🛍️", Color: "#EC4899"},
		{ID: "gesundheit", Name: "Gesundheit", Emoji: "🏥", Color: "#EF4444"},
		{ID: "essen", Name: "Essen & Kochen", Emoji: "🍽️", Color: "#F97316"},
		{ID: "reise", Name: "Reise", Emoji: "✈️", Color: "#0EA5E9"},
		{ID: "sport", Name: "Sport & Fitness", Emoji: "💪", Color: "#10B981"},
		{ID: "haushalt", Name: "Haushalt", Emoji: "🏠", Color: "#F59E0B"},
		{ID: "lernen", Name: "Lernen & Bildung", Emoji: "📚", Color: "#6366F1"},
		{ID: "ziele", Name: "Ziele & Projekte", Emoji: "🎯", Color: "#8B5CF6"},
		{ID: "unterhaltung", Name: "Unterhaltung", Emoji: "🎬", Color: "#F43F5E"},
		{ID: "kontakte", Name: "Kontakte & Meetings", Emoji: "👥", Color: "#14B8A6"},
		{ID: "geschenke", Name: "Geschenke", Emoji: "🎁", Color: "#059669"},
		{ID: "energie", Name: "Energie & Motivation", Emoji: "⚡", Color: "#EAB308"},
		{ID: "nachhaltigkeit", Name: "Nachhaltigkeit", Emoji: "🌱", Color: "#84CC16"},
		{ID: "finanzen", Name: "Finanzen", Emoji: "💰", Color: "#22C55E"},
		{ID: "tech", Name: "Tech & Tools", Emoji: "🔧", Color: "#64748B"},
	}
}
