package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrDeliveryMissing   = errors.New("delivery data missing")
	ErrOrderInProgress   = errors.New("order is being placed")
)

// Messages shown to shoppers.
const (
	MsgDuplicateItem  = "Este prato já está no carrinho."
	MsgPurchaseFailed = "Erro ao processar o pedido"
	MsgDeliveryAbsent = "Dados de entrega ausentes"
	MsgOrderPending   = "Pedido em processamento"
)

// TransitionError reports a wizard move that is not allowed from the
// current step. The state is left untouched when it is returned.
type TransitionError struct {
	Op   string
	From Step
	Err  error
}

func (e *TransitionError) Error() string {
	if e.Err != nil && e.Err != ErrInvalidTransition {
		return fmt.Sprintf("cannot %s while %s: %v", e.Op, e.From, e.Err)
	}
	return fmt.Sprintf("cannot %s while %s", e.Op, e.From)
}

func (e *TransitionError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidTransition
	}
	return e.Err
}

// Is lets every TransitionError match ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalidMove(op string, from Step) error {
	return &TransitionError{Op: op, From: from}
}
