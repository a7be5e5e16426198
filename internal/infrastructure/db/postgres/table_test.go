package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

func TestTable_InsertSQL(t *testing.T) {
	var cs changeset
	cs.set("cattle_id", int64(4))
	cs.set("image_url", "/images/a.jpg")

	sql, args := cattleImagesTable.insertSQL(cs)

	assert.Equal(t,
		"INSERT INTO cattle_images (cattle_id, image_url) VALUES ($1, $2) RETURNING image_id, cattle_id, image_url, uploaded_at",
		sql)
	assert.Equal(t, []any{int64(4), "/images/a.jpg"}, args)
}

func TestTable_InsertSQL_DefaultValues(t *testing.T) {
	sql, args := favoritesTable.insertSQL(nil)
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO favorites DEFAULT VALUES"))
	assert.Empty(t, args)
}

func TestTable_UpdateSQL_KeyIsLastPlaceholder(t *testing.T) {
	var cs changeset
	cs.set("name", "Bella")
	cs.set("status", "Sold")

	sql, args := cattleTable.updateSQL(9, cs)

	assert.Contains(t, sql, "UPDATE cattle SET name = $1, status = $2 WHERE cattle_id = $3 RETURNING ")
	assert.Equal(t, []any{"Bella", "Sold", int64(9)}, args)
}

func TestSetIf_SkipsAbsentFields(t *testing.T) {
	name := "Bella"
	var cs changeset
	setIf(&cs, "name", &name)
	setIf[string](&cs, "breed", nil)
	setDateIf(&cs, "birth_date", nil)

	require.Len(t, cs, 1)
	assert.Equal(t, assignment{column: "name", value: "Bella"}, cs[0])
}

func TestCattlePatch_EmptyPatchHasNoAssignments(t *testing.T) {
	repo := NewCattleRepository(nil)
	assert.Empty(t, repo.patch(domain.CattlePatch{}))
}

func TestUserChanges_AlwaysTouchesLastLogin(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewUserRepository(nil)
	repo.now = func() time.Time { return fixed }

	cs := repo.changes(domain.UserChanges{})

	require.Len(t, cs, 1)
	assert.Equal(t, "last_login", cs[0].column)
	assert.Equal(t, fixed, cs[0].value)
}

func TestCattleCreate_DefaultsStatus(t *testing.T) {
	repo := NewCattleRepository(nil)
	cs := repo.create(domain.CattleCreate{Name: "Bella", Gender: domain.GenderFemale})

	for _, a := range cs {
		if a.column == "status" {
			assert.Equal(t, string(domain.CattleAvailable), a.value)
			return
		}
	}
	t.Fatal("status column not set")
}

func TestDateArg(t *testing.T) {
	assert.Nil(t, dateArg(nil))
	assert.Nil(t, dateArg(&domain.Date{}))

	d := domain.NewDate(2024, time.May, 1)
	assert.Equal(t, d.Time, dateArg(&d))
}

func TestSchema_RendersEnumConstraints(t *testing.T) {
	ddl, err := Schema()
	require.NoError(t, err)

	assert.Contains(t, ddl, "CHECK (role IN ('Farmer', 'Client', 'Admin'))")
	assert.Contains(t, ddl, "CHECK (status IN ('Available', 'Sold', 'Not Available'))")
	assert.Contains(t, ddl, "DEFAULT 'Client'")
	assert.NotContains(t, ddl, "{{")
}

func TestSameID(t *testing.T) {
	one, other := int64(1), int64(2)
	alsoOne := int64(1)

	assert.True(t, sameID(nil, nil))
	assert.True(t, sameID(&one, &alsoOne))
	assert.False(t, sameID(&one, nil))
	assert.False(t, sameID(&one, &other))
}
