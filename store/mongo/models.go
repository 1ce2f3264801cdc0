package mongo

import (
	"strings"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/dbmanager/pseudonym"
)

// docID joins a natural key into a document id, so a repeated write
// collides on _id.
func docID(parts ...string) string {
	return strings.Join(parts, "/")
}

type accountModel struct {
	grove.BaseModel `grove:"table:accounts"`
	ID              string `grove:"id,pk"      bson:"_id"`
	AccountID       string `grove:"account_id" bson:"account_id"`
	TenantID        string `grove:"tenant_id"  bson:"tenant_id"`
}

func accountToModel(a *pseudonym.Account) *accountModel {
	return &accountModel{ID: docID(a.TenantID, a.ID), AccountID: a.ID, TenantID: a.TenantID}
}

type entityModel struct {
	grove.BaseModel `grove:"table:entities"`
	ID              string    `grove:"id,pk"     bson:"_id"`
	EntityID        string    `grove:"entity_id" bson:"entity_id"`
	TenantID        string    `grove:"tenant_id" bson:"tenant_id"`
	CreatedAt       time.Time `grove:"cre_dt_tm" bson:"cre_dt_tm"`
}

func entityToModel(e *pseudonym.Entity) *entityModel {
	return &entityModel{ID: docID(e.TenantID, e.ID), EntityID: e.ID, TenantID: e.TenantID, CreatedAt: e.CreatedAt}
}

type holderModel struct {
	grove.BaseModel `grove:"table:account_holder"`
	ID              string    `grove:"id,pk"     bson:"_id"`
	From            string    `grove:"from"      bson:"from"`
	To              string    `grove:"to"        bson:"to"`
	TenantID        string    `grove:"tenant_id" bson:"tenant_id"`
	CreatedAt       time.Time `grove:"cre_dt_tm" bson:"cre_dt_tm"`
}

func holderToModel(h *pseudonym.AccountHolder) *holderModel {
	return &holderModel{
		ID:        docID(h.TenantID, h.EntityID, h.AccountID),
		From:      h.EntityID,
		To:        h.AccountID,
		TenantID:  h.TenantID,
		CreatedAt: h.CreatedAt,
	}
}

func holderFromModel(m *holderModel) *pseudonym.AccountHolder {
	return &pseudonym.AccountHolder{
		EntityID:  m.From,
		AccountID: m.To,
		TenantID:  m.TenantID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type relationshipModel struct {
	grove.BaseModel `grove:"table:transaction_relationship"`
	ID              string    `grove:"id,pk"          bson:"_id"`
	From            string    `grove:"from"           bson:"from"`
	To              string    `grove:"to"             bson:"to"`
	TenantID        string    `grove:"tenant_id"      bson:"tenant_id"`
	EndToEndID      string    `grove:"end_to_end_id"  bson:"end_to_end_id"`
	MessageID       string    `grove:"msg_id"         bson:"msg_id"`
	PmtInfID        string    `grove:"pmt_inf_id"     bson:"pmt_inf_id,omitempty"`
	TxTp            string    `grove:"tx_tp"          bson:"tx_tp"`
	Amount          float64   `grove:"amt"            bson:"amt"`
	Currency        string    `grove:"ccy"            bson:"ccy"`
	Lat             string    `grove:"lat"            bson:"lat,omitempty"`
	Long            string    `grove:"long"           bson:"long,omitempty"`
	CreatedAt       time.Time `grove:"cre_dt_tm"      bson:"cre_dt_tm"`
}

func relationshipToModel(tr *pseudonym.TransactionRelationship) *relationshipModel {
	return &relationshipModel{
		ID:         docID(tr.TenantID, tr.EndToEndID, tr.TxTp),
		From:       tr.From,
		To:         tr.To,
		TenantID:   tr.TenantID,
		EndToEndID: tr.EndToEndID,
		MessageID:  tr.MessageID,
		PmtInfID:   tr.PmtInfID,
		TxTp:       tr.TxTp,
		Amount:     tr.Amount,
		Currency:   tr.Currency,
		Lat:        tr.Lat,
		Long:       tr.Long,
		CreatedAt:  tr.CreatedAt,
	}
}

func relationshipFromModel(m *relationshipModel) *pseudonym.TransactionRelationship {
	return &pseudonym.TransactionRelationship{
		From:       m.From,
		To:         m.To,
		TenantID:   m.TenantID,
		EndToEndID: m.EndToEndID,
		MessageID:  m.MessageID,
		PmtInfID:   m.PmtInfID,
		TxTp:       m.TxTp,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Lat:        m.Lat,
		Long:       m.Long,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}
