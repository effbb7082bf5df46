package dto

type VerifyPinInput struct {
	Pin       string `form:"pin" json:"pin"`
	ReturnURL string `form:"returnUrl" json:"return_url"`
}

type SetPinInput struct {
	Pin        string `json:"pin"`
	ConfirmPin string `json:"confirm_pin"`
}
