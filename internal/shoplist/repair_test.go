package shoplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "vegetables header and dash bullet",
			input:    "Овощи:\n- Лук - 1 кг",
			expected: "🥕 Овощи:\n• Лук - 1 кг",
		},
		{
			name:     "dairy matched anywhere",
			input:    "Молоко и сыр:\n• Молоко — 1 л",
			expected: "🥛 Молочные продукты:\n• Молоко — 1 л",
		},
		{
			name:     "meat and fish",
			input:    "  Свежая рыба:  \n-Скумбрия — 1 кг",
			expected: "🍖 Мясо и рыба:\n•Скумбрия — 1 кг",
		},
		{
			name:     "case insensitive prefix",
			input:    "БАКАЛЕЯ:\nНАПИТКИ:\nхимия:\nДругое:",
			expected: "📦 Бакалея:\n🥤 Напитки:\n🧴 Химия:\n📝 Другое:",
		},
		{
			name:     "keyword without colon is left alone",
			input:    "Овощи свежие\nКупи фрукты",
			expected: "Овощи свежие\nКупи фрукты",
		},
		{
			name:     "blank lines kept",
			input:    "Фрукты:\n\n- Киви",
			expected: "🍎 Фрукты:\n\n• Киви",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Repair(tt.input))
		})
	}
}

func TestRepair_Idempotent(t *testing.T) {
	inputs := []string{
		"Овощи:\n- Лук - 1 кг",
		"🥛 Молочные продукты:\n• Молоко — 1 л",
		"Мясо:\n--Фарш\n  \nДругое:\n-  Салфетки",
		"Привет! Что нужно купить сегодня?",
		Format(sampleList()),
		"🥕 Мясо:\n- 🍎 Фрукты:",
	}

	for _, in := range inputs {
		once := Repair(in)
		assert.Equal(t, once, Repair(once), "input %q", in)
	}
}

func TestLooksLikeList(t *testing.T) {
	assert.True(t, LooksLikeList("🥕 Овощи:\n• Лук — 1 кг"))
	assert.True(t, LooksLikeList("Овощи:\n- Лук"))
	assert.True(t, LooksLikeList("МЯСО:\n- Курица"))
	assert.False(t, LooksLikeList("Извините, я могу помочь только со списком базара."))
	assert.False(t, LooksLikeList("Привет! Что нужно купить сегодня?"))
}
