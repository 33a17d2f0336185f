package catalog

// Field names stored in each collection.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldType           = "type"
	FieldImageURL       = "image_url"
	FieldRating         = "rating"
	FieldCalories       = "calories"
	FieldProtein        = "protein"
	FieldCategories     = "categories"
	FieldMenu           = "menu"
	FieldCustomizations = "customizations"
)

type Category struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Customization is an add-on a menu item can offer. Type is open-ended
// (topping, side, size, crust, ...).
type Customization struct {
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
	Type  string  `yaml:"type" json:"type"`
}

type MenuItem struct {
	Name           string   `yaml:"name" json:"name"`
	Description    string   `yaml:"description" json:"description"`
	ImageURL       string   `yaml:"image_url" json:"image_url"`
	Price          float64  `yaml:"price" json:"price"`
	Rating         float64  `yaml:"rating" json:"rating"`
	Calories       int      `yaml:"calories" json:"calories"`
	Protein        int      `yaml:"protein" json:"protein"`
	CategoryName   string   `yaml:"category_name" json:"category_name"`
	Customizations []string `yaml:"customizations" json:"customizations"`
}

type Dataset struct {
	Categories     []Category      `yaml:"categories" json:"categories"`
	Customizations []Customization `yaml:"customizations" json:"customizations"`
	Menu           []MenuItem      `yaml:"menu" json:"menu"`
}

func (c Category) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldName:        c.Name,
		FieldDescription: c.Description,
	}
}

func (c Customization) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldName:  c.Name,
		FieldPrice: c.Price,
		FieldType:  c.Type,
	}
}

// Fields returns the stored menu document. The image is the hosted copy,
// not the source URL from the dataset.
func (m MenuItem) Fields(categoryID, imageURL string) map[string]interface{} {
	return map[string]interface{}{
		FieldName:        m.Name,
		FieldDescription: m.Description,
		FieldImageURL:    imageURL,
		FieldPrice:       m.Price,
		FieldRating:      m.Rating,
		FieldCalories:    m.Calories,
		FieldProtein:     m.Protein,
		FieldCategories:  categoryID,
	}
}

func LinkFields(menuID, customizationID string) map[string]interface{} {
	return map[string]interface{}{
		FieldMenu:           menuID,
		FieldCustomizations: customizationID,
	}
}
