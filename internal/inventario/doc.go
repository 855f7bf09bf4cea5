// Package inventario implements the inventory and sales domain: the
// productos/ventas catalog, the sales ledger, and the report queries built
// on top of them.
//
// The Repository interface has two implementations. SQLiteRepository runs
// against the local database file and is always available; PgxRepository
// runs against a PostgreSQL server when one is configured. Both return the
// same row structs so the menu renders them identically.
//
// Report methods return plain data; nothing in this package writes to the
// console.
package inventario
