// Package validation хранит правила для полей листинга перевозчика.
//
// Правила описаны таблицей "поле -> тег validator для каждой операции",
// одна и та же таблица применяется на сервере и отдаётся клиенту
// через GET /api/validation/carriers, чтобы форма проверяла то же самое.
package validation

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

const (
	FieldPhone       = "phone"
	FieldDescription = "description"
	FieldPIN         = "pin"
	FieldNewPIN      = "newPin"
)

const PINLength = 4

// Rule - ограничение одного поля. Пустой тег означает, что для операции поле не используется.
// Для update теги применяются только к переданным полям, кроме pin.
type Rule struct {
	Field    string            `json:"field"`
	Label    string            `json:"-"`
	Create   string            `json:"create,omitempty"`
	Update   string            `json:"update,omitempty"`
	Delete   string            `json:"delete,omitempty"`
	Messages map[string]string `json:"messages"`
}

func (r Rule) Tag(op Operation) string {
	switch op {
	case OpCreate:
		return r.Create
	case OpUpdate:
		return r.Update
	case OpDelete:
		return r.Delete
	default:
		return ""
	}
}

// Rules перечислены в порядке проверки, первое нарушение попадает в ответ.
var Rules = []Rule{
	{
		Field:  FieldPhone,
		Label:  "Phone",
		Create: "required",
		Update: "required",
		Messages: map[string]string{
			"required": "Phone is required",
		},
	},
	{
		Field:  FieldDescription,
		Label:  "Description",
		Create: "required",
		Update: "required",
		Messages: map[string]string{
			"required": "Description is required",
		},
	},
	{
		Field:  FieldPIN,
		Label:  "PIN",
		Create: "required,len=4",
		Update: "required",
		Delete: "required",
		Messages: map[string]string{
			"required": "PIN is required",
			"len":      "PIN must be exactly 4 characters",
		},
	},
	{
		Field:  FieldNewPIN,
		Label:  "New PIN",
		Update: "required,len=4",
		Messages: map[string]string{
			"required": "New PIN must be exactly 4 characters",
			"len":      "New PIN must be exactly 4 characters",
		},
	},
}

func labelFor(field string) string {
	if rule, ok := ruleFor(field); ok && rule.Label != "" {
		return rule.Label
	}
	return field
}

func ruleFor(field string) (Rule, bool) {
	for _, rule := range Rules {
		if rule.Field == field {
			return rule, true
		}
	}
	return Rule{}, false
}
