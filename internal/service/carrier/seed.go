package carrier

import (
	"carriers/internal/entities"

	"github.com/AlekSi/pointer"
)

// SeedData - демо-листинги, которые вставляются в пустое хранилище при старте.
func SeedData() []entities.CarrierModify {
	return []entities.CarrierModify{
		{
			Phone:       pointer.To("99112233"),
			Description: pointer.To("Can carry small packages within Murun center. Available 9am-6pm."),
			PIN:         pointer.To("1234"),
		},
		{
			Phone:       pointer.To("88445566"),
			Description: pointer.To("Car with large trunk. Can deliver to Khatgal on weekends."),
			PIN:         pointer.To("5678"),
		},
		{
			Phone:       pointer.To("99887766"),
			Description: pointer.To("Motorcycle delivery. Fast food or documents."),
			PIN:         pointer.To("0000"),
		},
	}
}
