package expense

import "errors"

// ValidationError is a user-correctable input failure. The message is shown
// to the operator as-is; no state has been mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// User-facing messages, kept verbatim from the submission form.
const (
	msgNothingToSubmit  = "申請する項目がありません。"
	msgFromRequired     = "出発駅を入力してください。"
	msgToRequired       = "帰着駅を入力してください。"
	msgAmountInvalid    = "金額を正しく入力してください。"
	msgTravelDateNeeded = "単発または出張の場合、利用日を入力してください。"
	msgPeriodNeeded     = "定期の場合、開始日と終了日を入力してください。"
	msgCarrierRequired  = "交通機関を入力してください。"
	msgRoundTripNeeds   = "往復にするには、出発駅と到着駅を入力してください。"
	msgTemplateEmpty    = "適用できるテンプレートデータがありません。"
	msgLastRow          = "最後の行は削除できません。"
)
