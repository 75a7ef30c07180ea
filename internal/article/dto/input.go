package dto

type CreateArticleInput struct {
	MerchantID      string `validate:"required"`
	ArticleNumber   string `validate:"required,max=64"`
	OrderID         string `validate:"max=64"`
	PlannedQuantity int    `validate:"gt=0"`
	LinkingType     string
	Priority        string `validate:"omitempty,oneof=Low Normal High Urgent low normal high urgent"`
	UserID          string
}

// ArticleRef addresses one article on behalf of a user.
type ArticleRef struct {
	MerchantID string `validate:"required"`
	ArticleID  string `validate:"required"`
	UserID     string
}

type UpdateCompletedInput struct {
	ArticleRef
	Floor    string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

type TransferInput struct {
	ArticleRef
	FromFloor string `validate:"required"`
	// Quantity nil transfers everything currently transferable.
	Quantity *int `validate:"omitempty,gt=0"`
}

type RecordGradingInput struct {
	ArticleRef
	Floor string `validate:"required"`
	M1    int    `validate:"gte=0"`
	M2    int    `validate:"gte=0"`
	M3    int    `validate:"gte=0"`
	M4    int    `validate:"gte=0"`
	// InspectedQuantity switches to strict inspection: the split must equal it.
	InspectedQuantity *int `validate:"omitempty,gte=0"`
	RepairStatus      *string
	RepairRemarks     *string `validate:"omitempty,max=500"`
}

type ShiftM2Input struct {
	ArticleRef
	Floor  string `validate:"required"`
	FromM2 int    `validate:"gt=0"`
	ToM1   int    `validate:"gte=0"`
	ToM3   int    `validate:"gte=0"`
	ToM4   int    `validate:"gte=0"`
}

type ConfirmFinalQualityInput struct {
	ArticleRef
	Confirmed bool
	Remarks   string `validate:"max=500"`
}

type RepairTransferInput struct {
	ArticleRef
	FromFloor   string `validate:"required"`
	Quantity    *int   `validate:"omitempty,gt=0"`
	TargetFloor string
}
