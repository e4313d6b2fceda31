package carrier

import (
	"carriers/internal/entities"
)

func ToDomain(c *CarrierDB) *entities.Carrier {
	if c == nil {
		return nil
	}

	return &entities.Carrier{
		ID:          c.ID,
		Phone:       c.Phone,
		Description: c.Description,
		PIN:         c.PIN,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDomainModify(carrierModify *entities.CarrierModify) *CarrierModifyDB {
	if carrierModify == nil {
		return nil
	}

	return &CarrierModifyDB{
		Phone:       carrierModify.Phone,
		Description: carrierModify.Description,
		PIN:         carrierModify.PIN,
	}
}

func ToDomainList(carriersDB []CarrierDB) []entities.Carrier {
	if len(carriersDB) == 0 {
		return []entities.Carrier{}
	}

	result := make([]entities.Carrier, len(carriersDB))
	for i := range carriersDB {
		result[i] = *ToDomain(&carriersDB[i])
	}
	return result
}
