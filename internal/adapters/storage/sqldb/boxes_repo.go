package sqldb

import (
	"context"
	"database/sql"

	"animal-facility/internal/domain/facility"
)

type boxRepo struct{ s *Store }

// CurrentAnimalID sale del animal que apunta al box (box_id es UNIQUE).
const boxSelect = `
	SELECT b.id, b.name, b.location, b.status, a.id
	FROM boxes b
	LEFT JOIN animals a ON a.box_id = b.id
`

func scanBox(sc interface{ Scan(...any) error }) (facility.Box, error) {
	var (
		b        facility.Box
		status   string
		animalID sql.NullString
	)
	if err := sc.Scan(&b.ID, &b.Name, &b.Location, &status, &animalID); err != nil {
		return facility.Box{}, err
	}
	b.Status = facility.BoxStatus(status)
	b.CurrentAnimalID = animalID.String
	return b, nil
}

func (r boxRepo) GetByID(ctx context.Context, id string) (facility.Box, error) {
	b, err := scanBox(r.s.queryRow(ctx, boxSelect+` WHERE b.id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return facility.Box{}, facility.NotFound("box", id)
		}
		return facility.Box{}, facility.WrapStorage("box", "get", err)
	}
	return b, nil
}

func (r boxRepo) GetAll(ctx context.Context) ([]facility.Box, error) {
	rows, err := r.s.query(ctx, boxSelect+` ORDER BY b.name, b.id`)
	if err != nil {
		return nil, facility.WrapStorage("box", "list", err)
	}
	out := make([]facility.Box, 0)
	for rows.Next() {
		b, err := scanBox(rows)
		if err != nil {
			_ = rows.Close()
			return nil, facility.WrapStorage("box", "list", err)
		}
		out = append(out, b)
	}
	if err := closeRows(rows); err != nil {
		return nil, facility.WrapStorage("box", "list", err)
	}
	return out, nil
}

// Save y Update ignoran b.CurrentAnimalID: se deriva de animals.box_id.
func (r boxRepo) Save(ctx context.Context, b facility.Box) (string, error) {
	if b.ID == "" {
		b.ID = facility.NewID()
	}
	_, err := r.s.exec(ctx, `
		INSERT INTO boxes (id, name, location, status)
		VALUES (?, ?, ?, ?)
	`, b.ID, b.Name, b.Location, string(b.Status))
	if err != nil {
		return "", facility.WrapStorage("box", "save", err)
	}
	return b.ID, nil
}

func (r boxRepo) Update(ctx context.Context, b facility.Box) error {
	return r.s.execAffecting(ctx, "box", "update", b.ID, `
		UPDATE boxes
		SET
			name = ?,
			location = ?,
			status = ?
		WHERE id = ?
	`, b.Name, b.Location, string(b.Status), b.ID)
}

func (r boxRepo) Delete(ctx context.Context, id string) error {
	return r.s.execAffecting(ctx, "box", "delete", id, `DELETE FROM boxes WHERE id = ?`, id)
}
