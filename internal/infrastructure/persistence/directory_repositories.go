package persistence

import (
	"fmt"

	"safetyportal/database"
	"safetyportal/internal/domain/repositories"
)

type manufacturerRepository struct {
	rowRepository[repositories.Manufacturer]
}

// NewManufacturerRepository создает новый репозиторий производителей
func NewManufacturerRepository(serviceDB *database.ServiceDB) repositories.ManufacturerRepository {
	return &manufacturerRepository{
		rowRepository: rowRepository[repositories.Manufacturer]{
			serviceDB:    serviceDB,
			entity:       database.Manufacturers,
			searchColumn: "name",
			fromRow: func(row database.Row) repositories.Manufacturer {
				return repositories.Manufacturer{
					ID:            row.ID(),
					Name:          row.String("name"),
					ProductType:   row.String("product_type"),
					Price:         row.Float64("price"),
					Location:      row.String("location"),
					ContactPerson: row.String("contact_person"),
					Phone:         row.String("phone"),
					Email:         row.String("email"),
					Notes:         row.String("notes"),
					CreatedAt:     row.Time("created_at"),
					UpdatedAt:     row.Time("updated_at"),
				}
			},
			toFields: func(m *repositories.Manufacturer) database.Fields {
				return database.Fields{
					"name":           m.Name,
					"product_type":   m.ProductType,
					"price":          m.Price,
					"location":       m.Location,
					"contact_person": m.ContactPerson,
					"phone":          m.Phone,
					"email":          m.Email,
					"notes":          m.Notes,
				}
			},
		},
	}
}

type partnerRepository struct {
	rowRepository[repositories.Partner]
	kind repositories.PartnerKind
}

// PartnerEntity возвращает таблицу для типа контрагента
func PartnerEntity(kind repositories.PartnerKind) (database.Entity, error) {
	switch kind {
	case repositories.PartnerImporter:
		return database.Importers, nil
	case repositories.PartnerDealer:
		return database.Dealers, nil
	case repositories.PartnerCustomer:
		return database.Customers, nil
	default:
		return database.Entity{}, fmt.Errorf("unknown partner kind %q", kind)
	}
}

// NewPartnerRepository создает репозиторий контрагентов указанного типа
func NewPartnerRepository(serviceDB *database.ServiceDB, kind repositories.PartnerKind) (repositories.PartnerRepository, error) {
	entity, err := PartnerEntity(kind)
	if err != nil {
		return nil, err
	}

	return &partnerRepository{
		kind: kind,
		rowRepository: rowRepository[repositories.Partner]{
			serviceDB:    serviceDB,
			entity:       entity,
			searchColumn: "name",
			fromRow: func(row database.Row) repositories.Partner {
				return repositories.Partner{
					ID:            row.ID(),
					Kind:          kind,
					Name:          row.String("name"),
					Location:      row.String("location"),
					ContactPerson: row.String("contact_person"),
					Phone:         row.String("phone"),
					Email:         row.String("email"),
					GSTNumber:     row.String("gst_number"),
					Notes:         row.String("notes"),
					CreatedAt:     row.Time("created_at"),
					UpdatedAt:     row.Time("updated_at"),
				}
			},
			toFields: func(p *repositories.Partner) database.Fields {
				return database.Fields{
					"name":           p.Name,
					"location":       p.Location,
					"contact_person": p.ContactPerson,
					"phone":          p.Phone,
					"email":          p.Email,
					"gst_number":     p.GSTNumber,
					"notes":          p.Notes,
				}
			},
		},
	}, nil
}

// Kind возвращает тип контрагентов репозитория
func (r *partnerRepository) Kind() repositories.PartnerKind {
	return r.kind
}

type productRepository struct {
	rowRepository[repositories.Product]
}

// NewProductRepository создает новый репозиторий каталога продукции
func NewProductRepository(serviceDB *database.ServiceDB) repositories.ProductRepository {
	return &productRepository{
		rowRepository: rowRepository[repositories.Product]{
			serviceDB:    serviceDB,
			entity:       database.Products,
			searchColumn: "name",
			fromRow: func(row database.Row) repositories.Product {
				return repositories.Product{
					ID:          row.ID(),
					Name:        row.String("name"),
					Subtype:     row.String("subtype"),
					Unit:        row.String("unit"),
					Rate:        row.Float64("rate"),
					Description: row.String("description"),
					CreatedAt:   row.Time("created_at"),
					UpdatedAt:   row.Time("updated_at"),
				}
			},
			toFields: func(p *repositories.Product) database.Fields {
				fields := database.Fields{
					"name":        p.Name,
					"subtype":     p.Subtype,
					"rate":        p.Rate,
					"description": p.Description,
				}
				// Пустая единица измерения оставляет значение по умолчанию из схемы
				if p.Unit != "" {
					fields["unit"] = p.Unit
				}
				return fields
			},
		},
	}
}
