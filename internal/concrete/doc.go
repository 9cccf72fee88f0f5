// Package concrete serves the catalog of concrete strength classes.
//
// The catalog ships embedded as YAML. When a database is configured the same rows are
// seeded into Postgres and read from there, so operators can extend the table.
package concrete
