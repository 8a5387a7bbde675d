package product

type ListPublicQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=12" binding:"min=1,max=100"`
}

type ProductResponse struct {
	ID      string `json:"id"`
	SKU     string `json:"sku"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Stock   int32  `json:"stock"`
	IsBonus bool   `json:"isBonus"`
}
