// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the storage contract for pubs, drinks and price entries.

# Operations

Every collection supports insert with a generated id, fetch-all and
delete-by-id. Price entries add ReplaceActivePrice, the single conditional
update the active price model needs:

	entry, err := s.ReplaceActivePrice(ctx, models.PriceEntry{
		PubID:   pubID,
		DrinkID: drinkID,
		Price:   decimal.RequireFromString("4.20"),
	})

The previous active row for the pair is deactivated and the new row is
inserted in one atomic step, so sequential submissions always leave exactly
one active row and concurrent ones cannot leave zero or two.

# Implementations

  - Memory: mutex-guarded slices, used by tests and -t memory
  - SQL: database/sql for postgres (row lock) and sqlite (single writer)
  - Firestore: the pubs, pintDefinitions and pintPrices collections,
    with the flip inside RunTransaction

# Helpers

Load reads all three collections for the aggregation functions.
WipePrices and WipeAll remove records through fetch-all and delete-by-id.
*/
package store
