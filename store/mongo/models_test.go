package mongo

import (
	"testing"
	"time"

	"github.com/xraph/dbmanager/pseudonym"
)

func TestDocIDFromNaturalKey(t *testing.T) {
	a := accountToModel(&pseudonym.Account{ID: "acc-1", TenantID: "t1"})
	if a.ID != "t1/acc-1" {
		t.Fatalf("account _id = %q, want t1/acc-1", a.ID)
	}

	tr := relationshipToModel(&pseudonym.TransactionRelationship{
		TenantID: "t1", EndToEndID: "e2e", TxTp: "pacs.008.001.10",
	})
	if tr.ID != "t1/e2e/pacs.008.001.10" {
		t.Fatalf("relationship _id = %q", tr.ID)
	}
}

func TestRelationshipRoundTrip(t *testing.T) {
	in := &pseudonym.TransactionRelationship{
		From: "dbtr", To: "cdtr", TenantID: "t1", EndToEndID: "e2e", MessageID: "msg",
		TxTp: "pacs.008.001.10", Amount: 12.5, Currency: "USD",
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	out := relationshipFromModel(relationshipToModel(in))
	if *out != *in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestMigrationIndexesAreUnique(t *testing.T) {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			t.Fatalf("%s has no indexes", col)
		}
		if models[0].Options == nil {
			t.Fatalf("%s: first index must carry the unique natural key", col)
		}
	}
}
