package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPromocodeInput() PromocodeInput {
	return PromocodeInput{
		ServiceName: "Spotify",
		Code:        "MUSIC50",
		Description: "Полгода премиума за полцены",
		Discount:    "50%",
		Category:    "音楽",
	}
}

func TestValidatePromocodeInput_Success(t *testing.T) {
	slug, err := ValidatePromocodeInput(validPromocodeInput())
	assert.NoError(t, err)
	assert.Equal(t, "music", slug)
}

func TestValidatePromocodeInput_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PromocodeInput)
	}{
		{"пустое название сервиса", func(in *PromocodeInput) { in.ServiceName = "" }},
		{"пустой промокод", func(in *PromocodeInput) { in.Code = "   " }},
		{"пустое описание", func(in *PromocodeInput) { in.Description = "" }},
		{"пустая скидка", func(in *PromocodeInput) { in.Discount = "" }},
		{"пустая категория", func(in *PromocodeInput) { in.Category = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validPromocodeInput()
			tc.mutate(&in)
			_, err := ValidatePromocodeInput(in)
			assert.Error(t, err)
		})
	}
}

func TestValidatePromocodeInput_LinksBanned(t *testing.T) {
	banned := []string{
		"Регистрируйтесь на https://evil.example.com прямо сейчас",
		"Подробности: http://acme.io/promo",
		"visit www.acme.com for details",
		"HTTPS://UPPER.EXAMPLE.COM",
	}
	for _, desc := range banned {
		in := validPromocodeInput()
		in.Description = desc
		_, err := ValidatePromocodeInput(in)
		assert.Error(t, err, desc)
	}

	// Обычный текст с точками проходит.
	in := validPromocodeInput()
	in.Description = "Скидка действует до конца месяца. Успейте."
	_, err := ValidatePromocodeInput(in)
	assert.NoError(t, err)
}

func TestValidatePromocodeInput_UnknownCategory(t *testing.T) {
	in := validPromocodeInput()
	in.Category = "казино"
	_, err := ValidatePromocodeInput(in)
	assert.Error(t, err)
}

func TestValidatePromocodeInput_TooLong(t *testing.T) {
	in := validPromocodeInput()
	in.Description = strings.Repeat("あ", MaxDescriptionLength+1)
	_, err := ValidatePromocodeInput(in)
	assert.Error(t, err)

	// Ровно на границе — проходит.
	in.Description = strings.Repeat("あ", MaxDescriptionLength)
	_, err = ValidatePromocodeInput(in)
	assert.NoError(t, err)
}

func TestContainsLink(t *testing.T) {
	assert.True(t, ContainsLink("смотри www.site.ru тут"))
	assert.False(t, ContainsLink("обычное описание без ссылок"))
}

func TestValidateReason(t *testing.T) {
	assert.Error(t, ValidateReason(""))
	assert.Error(t, ValidateReason(strings.Repeat("x", MaxReasonLength+1)))
	assert.NoError(t, ValidateReason("промокод просрочен"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", MaxPasswordLength+1)))
	assert.NoError(t, ValidatePassword("password123"))
}
