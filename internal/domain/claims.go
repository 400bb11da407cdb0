package domain

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações carregadas no token de acesso à API
type Claims struct {
	AccountIDs []string `json:"account_ids,omitempty"`
	jwt.RegisteredClaims
}

// CanAccess indica se o token permite consultar a conta informada.
// Um token sem contas vinculadas acessa qualquer conta.
func (c *Claims) CanAccess(accountID string) bool {
	if len(c.AccountIDs) == 0 {
		return true
	}

	return slices.Contains(c.AccountIDs, accountID)
}

// IsOperator indica um token sem restrição de contas, que pode operar as rotinas internas
func (c *Claims) IsOperator() bool {
	return len(c.AccountIDs) == 0
}
