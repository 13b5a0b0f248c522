package migration

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql
var embedded embed.FS

// Embedded returns a Runner over the SQL files compiled into the binary.
func Embedded() (Runner, error) {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		return Runner{}, err
	}
	return Runner{FS: sub}, nil
}
