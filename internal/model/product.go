package model

// ProcessStep is one row of a product definition's ordered process.
type ProcessStep struct {
	ProductID     string `db:"product_id" json:"product_id"`
	ArticleNumber string `db:"article_number" json:"article_number"`
	StepName      string `db:"step_name" json:"step_name"`
	Sequence      int    `db:"sequence" json:"sequence"`
}
