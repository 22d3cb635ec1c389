// Package ofx imports OFX/QFX bank and credit card statements as ledger
// transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An opening tag alone on a line with its closing bracket missing.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// A leading "MM/DD " posting date.
	datePrefixRegex = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

// namePrefixes are card-network noise in front of the merchant name.
var namePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// Parser converts OFX statements into ledger transactions.
type Parser struct {
	// Category is assigned to every imported row; statements carry none.
	Category model.Category
}

// NewParser creates a parser that files imports under model.CategoryOther.
func NewParser() *Parser {
	return &Parser{Category: model.CategoryOther}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX document. Each row carries its FITID as
// ExternalID so re-importing a statement adds nothing new.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts, skipped int

	add := func(list *ofxgo.TransactionList) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			txn, ok := p.convertTransaction(ofxTx)
			if !ok {
				skipped++
				continue
			}
			transactions = append(transactions, txn)
		}
	}

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			add(stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			add(stmt.BankTranList)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction maps one statement line. Zero-amount lines are
// dropped since the ledger only records positive amounts.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		slog.Debug("Skipping zero amount transaction", "fitid", ofxTx.FiTID)
		return model.Transaction{}, false
	}

	txnType := model.TypeExpense
	if amount > 0 || isCreditType(ofxTx) {
		txnType = model.TypeIncome
	}
	if amount < 0 {
		amount = -amount
	}

	description := p.extractDescription(ofxTx)
	if description == "" {
		description = ofxTx.TrnType.String()
	}

	return model.Transaction{
		Date:        model.FormatDate(ofxTx.DtPosted.Time),
		Category:    p.Category,
		Description: description,
		Amount:      amount,
		Type:        txnType,
		ExternalID:  string(ofxTx.FiTID),
	}, true
}

func isCreditType(tx ofxgo.Transaction) bool {
	switch tx.TrnType {
	case ofxgo.TrnTypeCredit, ofxgo.TrnTypeDep, ofxgo.TrnTypeDirectDep,
		ofxgo.TrnTypeInt, ofxgo.TrnTypeDiv:
		return true
	default:
		return false
	}
}

// extractDescription tries to get a clean merchant name from OFX data.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	for _, prefix := range namePrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(datePrefixRegex.ReplaceAllString(name, ""))
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	default:
		return false
	}
}

// GetAccounts extracts the sorted, unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accounts[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accounts[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	return slices.Sorted(maps.Keys(accounts)), nil
}
