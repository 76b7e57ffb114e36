package database

import (
	"database/sql"

	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
)

type DbLead struct {
	Id        string
	Email     string
	FullName  string
	Source    string
	EventName string
	CreatedTs int64
}

const selectAllLeads = "SELECT id, email, full_name, source, event_name, created_ts FROM leads ORDER BY created_ts DESC;"
const selectLeadsBySource = "SELECT id, email, full_name, source, event_name, created_ts FROM leads WHERE source = $1 ORDER BY created_ts DESC;"
const insertLead = "INSERT INTO leads (id, email, full_name, source, event_name, created_ts) VALUES ($1, $2, $3, $4, $5, $6);"
const deleteLead = "DELETE FROM leads WHERE id = $1;"

type leadsTableStatements struct {
	selectAllLeads      *sql.Stmt
	selectLeadsBySource *sql.Stmt
	insertLead          *sql.Stmt
	deleteLead          *sql.Stmt
}

type leadsTableWithContext struct {
	statements *leadsTableStatements
	ctx        rcontext.RequestContext
}

func prepareLeadsTables(db *sql.DB) (*leadsTableStatements, error) {
	var err error
	var stmts = &leadsTableStatements{}

	if stmts.selectAllLeads, err = db.Prepare(selectAllLeads); err != nil {
		return nil, err
	}
	if stmts.selectLeadsBySource, err = db.Prepare(selectLeadsBySource); err != nil {
		return nil, err
	}
	if stmts.insertLead, err = db.Prepare(insertLead); err != nil {
		return nil, err
	}
	if stmts.deleteLead, err = db.Prepare(deleteLead); err != nil {
		return nil, err
	}

	return stmts, nil
}

func (s *leadsTableStatements) Prepare(ctx rcontext.RequestContext) *leadsTableWithContext {
	return &leadsTableWithContext{
		statements: s,
		ctx:        ctx,
	}
}

func (s *leadsTableWithContext) scanRows(rows *sql.Rows, err error) ([]*DbLead, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*DbLead, 0)
	for rows.Next() {
		val := &DbLead{}
		if err = rows.Scan(&val.Id, &val.Email, &val.FullName, &val.Source, &val.EventName, &val.CreatedTs); err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, rows.Err()
}

func (s *leadsTableWithContext) GetAll() ([]*DbLead, error) {
	return s.scanRows(s.statements.selectAllLeads.QueryContext(s.ctx))
}

func (s *leadsTableWithContext) GetBySource(source string) ([]*DbLead, error) {
	return s.scanRows(s.statements.selectLeadsBySource.QueryContext(s.ctx, source))
}

func (s *leadsTableWithContext) Insert(lead *DbLead) error {
	_, err := s.statements.insertLead.ExecContext(s.ctx, lead.Id, lead.Email, lead.FullName, lead.Source, lead.EventName, lead.CreatedTs)
	return err
}

func (s *leadsTableWithContext) Delete(id string) error {
	res, err := s.statements.deleteLead.ExecContext(s.ctx, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
