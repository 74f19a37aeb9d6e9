// Package ofx parses OFX/QFX bank exports into draft transactions
// ready to be submitted to the backend.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// Draft is one statement entry converted to the backend's transaction
// shape: positive amount, direction in Type. The caller decides which
// backend account it belongs to.
type Draft struct {
	FiTID       string
	Description string
	Type        model.TransactionType
	Date        model.Date
	Amount      decimal.Decimal
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes common formatting issues in OFX files.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns draft transactions.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]Draft, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var drafts []Draft
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			drafts = append(drafts, p.processTranList(stmt.BankTranList)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			drafts = append(drafts, p.processTranList(stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"transactions", len(drafts),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return drafts, nil
}

func (p *Parser) processTranList(list *ofxgo.TransactionList) []Draft {
	if list == nil {
		return nil
	}
	drafts := make([]Draft, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		drafts = append(drafts, p.convert(ofxTx))
	}
	return drafts
}

// convert maps an OFX transaction to a backend draft. OFX carries
// direction in the amount's sign; the backend wants a positive amount
// with an explicit type.
func (p *Parser) convert(ofxTx ofxgo.Transaction) Draft {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	txnType := model.TypeExpense
	if amount.IsPositive() {
		txnType = model.TypeIncome
	}

	return Draft{
		FiTID:       string(ofxTx.FiTID),
		Date:        model.DateOf(ofxTx.DtPosted.Time),
		Description: p.description(ofxTx),
		Amount:      amount.Abs(),
		Type:        txnType,
	}
}

// description picks the cleanest available description field.
func (p *Parser) description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}
