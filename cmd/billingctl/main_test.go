package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/energy-billing/pkg/jwt"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestToken_EmiteTokenDeOperador(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	out, err := execute(t, "token", "--subject", "ops@example.com")
	require.NoError(t, err)

	subject, role, err := pkgjwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", subject)
	assert.Equal(t, pkgjwt.RoleOperator, role)
}

func TestToken_SinSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestMigrate_RequierePostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	_, err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER=postgres")
}

func TestRun_MemoriaConSemillas(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	dir := t.TempDir()
	files := map[string]string{
		"meters.csv": "meterId,cups,address,postalCode,city\nMTR001,,Calle Mayor 1,28001,Madrid\n",
		"contracts.csv": "contractId,meterId,customerId,fullName,nif,email,contractType,startDate,endDate,billingCycle,flatMonthlyFee,includedKwh,overagePricePerKwh,fixedPricePerKwh,taxRate,iban\n" +
			"CONT001,MTR001,C1,Ana García,1Z,a@x.es,FIXED,2024-01-01,,MONTHLY,,,,0.19,0.21,\n",
		"readings.csv": "meterId,date,hour,kwh,quality\nMTR001,2024-03-01,0,100.000,REAL\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	out, err := execute(t, "run", "--period", "2024-03", "--seed", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "periodo 2024-03: generadas=1 omitidas=0 fallidas=0")
	assert.Contains(t, out, "total=22.99")
}

func TestRun_PeriodoInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	_, err := execute(t, "run", "--period", "2024-13")
	assert.Error(t, err)
}
