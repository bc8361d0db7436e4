package migrations

import "github.com/go-rel/rel"

func MigrateCreateShirts(schema *rel.Schema) {
	schema.CreateTable("shirts", func(t *rel.Table) {
		t.ID("id")
		t.String("brand")
		t.String("color")
		t.Int("size")
		t.String("gender")
		t.Float("price")
	})
}

func RollbackCreateShirts(schema *rel.Schema) {
	schema.DropTable("shirts")
}
