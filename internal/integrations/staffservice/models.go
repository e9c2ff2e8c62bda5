package staffservice

// Company компания (тенант) с её ресурсами и менеджерами
type Company struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Timezone  string     `json:"timezone"` // фиксированная IANA таймзона бизнеса
	Managers  []int64    `json:"managers"`
	Resources []Resource `json:"resources"`
}

// Resource бронируемый ресурс компании (сотрудник, кабинет)
type Resource struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// Service услуга компании
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	ResourceIDs     []int64 `json:"resourceIds"` // ресурсы, выполняющие услугу
}

// HasResource проверяет, что ресурс принадлежит компании
func (c *Company) HasResource(resourceID int64) bool {
	for _, r := range c.Resources {
		if r.ID == resourceID {
			return true
		}
	}
	return false
}

// HasManager проверяет, что пользователь является менеджером компании
func (c *Company) HasManager(userID int64) bool {
	for _, id := range c.Managers {
		if id == userID {
			return true
		}
	}
	return false
}

// AvailableOnResource проверяет, что услугу выполняет указанный ресурс
func (s *Service) AvailableOnResource(resourceID int64) bool {
	for _, id := range s.ResourceIDs {
		if id == resourceID {
			return true
		}
	}
	return false
}
