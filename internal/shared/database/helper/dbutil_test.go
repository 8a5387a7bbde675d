package helper_test

import (
	"database/sql"
	"testing"
	"time"

	"go-digistore-api/internal/shared/database/helper"

	"github.com/stretchr/testify/assert"
)

func TestNullConversions(t *testing.T) {
	assert.False(t, helper.RawStringToNull("").Valid)
	assert.Equal(t, sql.NullString{String: "gopay", Valid: true}, helper.RawStringToNull("gopay"))

	assert.Nil(t, helper.NullInt64ToPtr(sql.NullInt64{}))
	v := int64(100000)
	assert.Equal(t, &v, helper.NullInt64ToPtr(helper.Int64ToNull(&v)))

	assert.False(t, helper.TimeToNull(time.Time{}).Valid)
	now := time.Now()
	assert.Equal(t, now, *helper.NullTimeToPtr(helper.TimeToNull(now)))

	assert.Equal(t, "", helper.NullStringValue(sql.NullString{}))
	assert.Nil(t, helper.NullStringToPtr(sql.NullString{}))

	assert.True(t, helper.BoolPtrValue(nil, true))
	f := false
	assert.False(t, helper.BoolPtrValue(&f, true))
}
