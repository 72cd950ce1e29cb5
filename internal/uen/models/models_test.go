package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_AddKeepsInsertionOrder(t *testing.T) {
	var fe FieldErrors
	fe = fe.Add(FieldOtherEntity, "c")
	fe = fe.Add(FieldBusinessReg, "a")
	fe = fe.Add(FieldOtherEntity, "d")

	require.Len(t, fe, 2)
	assert.Equal(t, FieldOtherEntity, fe[0].Field)
	assert.Equal(t, []string{"c", "d"}, fe.For(FieldOtherEntity))
	assert.Equal(t, []string{"a"}, fe.For(FieldBusinessReg))
	assert.Nil(t, fe.For(FieldLocalCompany))
	assert.False(t, fe.Has(FieldLocalCompany))
}

func TestFieldErrors_MarshalJSONPreservesOrder(t *testing.T) {
	fe := FieldErrors{
		{Field: FieldBusinessReg, Messages: []string{"first"}},
		{Field: FieldOtherEntity, Messages: []string{"second"}},
	}
	data, err := json.Marshal(fe)
	require.NoError(t, err)
	assert.Equal(t, `{"BusinessReg":["first"],"OtherEntity":["second"]}`, string(data))
}

func TestOutcome_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Outcome{Valid: true, RecordErrors: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"field_errors":{},"record_errors":[]}`, string(data))
}

func TestOutcome_Messages(t *testing.T) {
	o := Outcome{
		FieldErrors:  FieldErrors{{Field: FieldLocalCompany, Messages: []string{"field"}}},
		RecordErrors: []string{"record"},
	}
	assert.Equal(t, []string{"record", "field"}, o.Messages())
	assert.Equal(t, []Field{FieldLocalCompany}, o.FailedFields())
}

func TestRecord_Value(t *testing.T) {
	r := Record{BusinessReg: "a", LocalCompany: "b", OtherEntity: "c"}
	assert.Equal(t, "a", r.Value(FieldBusinessReg))
	assert.Equal(t, "b", r.Value(FieldLocalCompany))
	assert.Equal(t, "c", r.Value(FieldOtherEntity))
	assert.Empty(t, r.Value(Field("nope")))
}

func TestKind_Field(t *testing.T) {
	f, ok := KindOtherEntity.Field()
	assert.True(t, ok)
	assert.Equal(t, FieldOtherEntity, f)

	_, ok = KindUnknown.Field()
	assert.False(t, ok)
}
