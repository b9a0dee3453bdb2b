package introspect

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechXTT/scaffold/internal/dsl"
)

const probeSchema = `
enum Role {
  ADMIN
  MEMBER
}

model Author {
  id        String   @id @default(uuid()) @db.Uuid
  name      String
  role      Role
  email     String   @map("email_address")
  books     Book[]
  createdAt DateTime @default(now())
}

model Book {
  id    Int    @id @default(autoincrement())
  title String
}
`

func TestProbe(t *testing.T) {
	ast, err := dsl.ParseSchema([]byte(probeSchema))
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(columnsQuery)

	// Author exists under its exact name, with a mistyped name column and no
	// createdAt column.
	mock.ExpectQuery(query).WithArgs("public", "Author").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "udt_name"}).
			AddRow("id", "uuid").
			AddRow("name", "int4").
			AddRow("role", "Role").
			AddRow("email_address", "text"),
	)
	// Book is absent under both candidate names.
	mock.ExpectQuery(query).WithArgs("public", "Book").WillReturnRows(sqlmock.NewRows([]string{"column_name", "udt_name"}))
	mock.ExpectQuery(query).WithArgs("public", "book").WillReturnRows(sqlmock.NewRows([]string{"column_name", "udt_name"}))

	reports, err := Probe(context.Background(), db, ast, "", nil)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	author := reports[0]
	assert.Equal(t, "Author", author.Table)
	assert.Equal(t, []string{"createdAt"}, author.MissingColumns)
	assert.Equal(t, []Mismatch{{Field: "name", Want: "TEXT", Got: "INTEGER"}}, author.Mismatches)
	assert.False(t, author.OK())

	book := reports[1]
	assert.Empty(t, book.Table)
	assert.False(t, book.OK())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbe_LowerCaseTable(t *testing.T) {
	ast, err := dsl.ParseSchema([]byte("model Book {\n  id Int @id\n  title String\n}\n"))
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(columnsQuery)
	mock.ExpectQuery(query).WithArgs("app", "Book").WillReturnRows(sqlmock.NewRows([]string{"column_name", "udt_name"}))
	mock.ExpectQuery(query).WithArgs("app", "book").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "udt_name"}).
			AddRow("id", "int4").
			AddRow("title", "varchar"),
	)

	reports, err := Probe(context.Background(), db, ast, "app", nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "book", reports[0].Table)
	assert.True(t, reports[0].OK())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbe_QueryError(t *testing.T) {
	ast, err := dsl.ParseSchema([]byte("model book {\n  id Int @id\n}\n"))
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("public", "book").WillReturnError(boom)

	_, err = Probe(context.Background(), db, ast, "public", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "introspect table book")
}

func TestProbe_MappedTable(t *testing.T) {
	ast, err := dsl.ParseSchema([]byte(`
model User {
  id    Int    @id
  email String @map("email_address")

  @@map("users")
}
`))
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(columnsQuery)).WithArgs("public", "users").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "udt_name"}).
			AddRow("id", "int4").
			AddRow("email_address", "text"),
	)

	reports, err := Probe(context.Background(), db, ast, "public", nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "users", reports[0].Table)
	assert.True(t, reports[0].OK())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateTables(t *testing.T) {
	assert.Equal(t, []string{"users", "User", "user"}, candidateTables(dsl.Entity{Name: "User", Map: "users"}))
	assert.Equal(t, []string{"book"}, candidateTables(dsl.Entity{Name: "book"}))
	assert.Equal(t, []string{"Book", "book"}, candidateTables(dsl.Entity{Name: "Book", Map: "Book"}))
}
