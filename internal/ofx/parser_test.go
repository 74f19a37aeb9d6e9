package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1250.00
<FITID>2024012001
<NAME>PAYROLL DEPOSIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParser_ParseFile(t *testing.T) {
	parser := NewParser()

	drafts, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	debit := drafts[0]
	assert.Equal(t, "2024011501", debit.FiTID)
	assert.Equal(t, "2024-01-15", debit.Date.String())
	assert.Equal(t, "STARBUCKS STORE #1234", debit.Description)
	assert.Equal(t, model.TypeExpense, debit.Type)
	assert.True(t, debit.Amount.Equal(decimal.NewFromFloat(25.50)), "amount %s", debit.Amount)

	credit := drafts[1]
	assert.Equal(t, model.TypeIncome, credit.Type)
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(1250)))
}

func TestParser_Preprocess(t *testing.T) {
	parser := NewParser()

	t.Run("fixes mixed-case severity", func(t *testing.T) {
		fixed := parser.preprocess("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", fixed)
	})

	t.Run("closes unterminated tags", func(t *testing.T) {
		fixed := parser.preprocess("stub\n<BANKTRANLIST\n")
		assert.Contains(t, fixed, "<BANKTRANLIST>")
	})

	t.Run("trims leading blank lines", func(t *testing.T) {
		fixed := parser.preprocess("\n\n  OFXHEADER:100")
		assert.True(t, strings.HasPrefix(fixed, "OFXHEADER"))
	})
}

func TestParser_ParseFileRejectsGarbage(t *testing.T) {
	parser := NewParser()
	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}
