package domain

// domain package contains the domain models of the console and the interfaces to handle them.
//
// `domain/console` package exposes the root object bound to the global database.
// Entrypoints should instantiate it and use it to reach every entity.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and functions.
// For example, `domain/user.go` contains the `User` entity and precommit transactions of deleting users.
//
// `domain/ENTITY/db` directory contains the database expression of the entity,
// `db/postgres` implements it, and `db/mock` is the mock for tests.
//
// # Entities
//
//   - User: an account holder. Deleting a user is recorded as a PrecommitTransaction,
//     which regions take asynchronously.
//   - Account: balances of a user.
//   - Token: API tokens owned by a user.
//   - RealNameInfo: the result of real-name (face) verification.
//   - Invoice: invoice applications.
//
// Kubernetes resources (instances, devboxes) are not domain entities;
// see packages `kube`, `instance` and `devbox`.
