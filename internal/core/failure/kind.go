package failure

import "errors"

// Kind はドメインエラーの種別です。トランスポート層はこの値を元にレスポンスを組み立てます。
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindJobOfferNotFound
	KindProfessionalNotFound
	KindCustomerNotFound
	KindMessageNotFound
	KindInvalidStatusTransition
	KindInvalidStateTransition
	KindRequiredProfessionalID
	KindNotAvailableProfessional
	KindInconsistentProfessional
	KindInvalidUpdateMessageRequest
	KindConcurrentModification
)

var kindNames = map[Kind]string{
	KindUnknown:                     "UNKNOWN",
	KindInvalidArgument:             "INVALID_ARGUMENT",
	KindJobOfferNotFound:            "JOB_OFFER_NOT_FOUND",
	KindProfessionalNotFound:        "PROFESSIONAL_NOT_FOUND",
	KindCustomerNotFound:            "CUSTOMER_NOT_FOUND",
	KindMessageNotFound:             "MESSAGE_NOT_FOUND",
	KindInvalidStatusTransition:     "INVALID_STATUS_TRANSITION",
	KindInvalidStateTransition:      "INVALID_STATE_TRANSITION",
	KindRequiredProfessionalID:      "REQUIRED_PROFESSIONAL_ID",
	KindNotAvailableProfessional:    "NOT_AVAILABLE_PROFESSIONAL",
	KindInconsistentProfessional:    "INCONSISTENT_PROFESSIONAL_STATUS_TRANSITION",
	KindInvalidUpdateMessageRequest: "INVALID_UPDATE_MESSAGE_REQUEST",
	KindConcurrentModification:      "CONCURRENT_MODIFICATION",
}

// String は外部公開用の安定した種別名を返します。
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error は種別付きのセンチネルエラーです。
type Error struct {
	Kind Kind
	Msg  string
}

// New は Error を生成します。
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Msg
}

// KindOf はラップされたエラーチェーンから種別を取り出します。
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) && fe != nil {
		return fe.Kind
	}
	return KindUnknown
}
