package catalog

// Product представляет товар витрины. Неизменяемый, владелец — каталог.
type Product struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Description   string  `json:"description" db:"description"`
	Price         float64 `json:"price" db:"price"` // Используем float64 для денег, или специальный тип decimal
	OriginalPrice float64 `json:"original_price,omitempty" db:"original_price"`
	Category      string  `json:"category" db:"category"`
	Rating        float64 `json:"rating" db:"rating"`
	Reviews       int     `json:"reviews" db:"reviews"`
	IsNew         bool    `json:"is_new" db:"is_new"`
	IsBestSeller  bool    `json:"is_best_seller" db:"is_best_seller"`
	IsRecommended bool    `json:"is_recommended" db:"is_recommended"`
	Discount      int     `json:"discount,omitempty" db:"discount"`
}

// CategoryAll — псевдокатегория "показать всё" из витрины.
const CategoryAll = "Todos"

// Categories — фиксированный набор категорий магазина.
var Categories = []string{
	"Electrónicos",
	"Ropa",
	"Hogar",
	"Deportes",
	"Libros",
	"Juguetes",
	"Belleza",
	"Automotriz",
}
