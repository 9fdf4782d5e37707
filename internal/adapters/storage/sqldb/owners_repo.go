package sqldb

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type ownerRepo struct{ s *Store }

const ownerColumns = `id, first_name, last_name, email, phone, address`

func scanOwner(sc interface{ Scan(...any) error }) (facility.Owner, error) {
	var o facility.Owner
	err := sc.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Phone, &o.Address)
	return o, err
}

func (r ownerRepo) GetByID(ctx context.Context, id string) (facility.Owner, error) {
	row := r.s.queryRow(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = ?`, id)
	o, err := scanOwner(row)
	if err != nil {
		if isNoRows(err) {
			return facility.Owner{}, facility.NotFound("owner", id)
		}
		return facility.Owner{}, facility.WrapStorage("owner", "get", err)
	}

	rows, err := r.s.query(ctx, `SELECT id FROM animals WHERE owner_id = ? ORDER BY owner_rank, id`, id)
	if err != nil {
		return facility.Owner{}, facility.WrapStorage("owner", "get", err)
	}
	o.AnimalIDs = []string{}
	for rows.Next() {
		var animalID string
		if err := rows.Scan(&animalID); err != nil {
			_ = rows.Close()
			return facility.Owner{}, facility.WrapStorage("owner", "get", err)
		}
		o.AnimalIDs = append(o.AnimalIDs, animalID)
	}
	if err := closeRows(rows); err != nil {
		return facility.Owner{}, facility.WrapStorage("owner", "get", err)
	}
	return o, nil
}

func (r ownerRepo) GetAll(ctx context.Context) ([]facility.Owner, error) {
	rows, err := r.s.query(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, facility.WrapStorage("owner", "list", err)
	}
	out := make([]facility.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			_ = rows.Close()
			return nil, facility.WrapStorage("owner", "list", err)
		}
		out = append(out, o)
	}
	if err := closeRows(rows); err != nil {
		return nil, facility.WrapStorage("owner", "list", err)
	}

	rows, err = r.s.query(ctx, `
		SELECT owner_id, id FROM animals
		WHERE owner_id IS NOT NULL
		ORDER BY owner_rank, id
	`)
	if err != nil {
		return nil, facility.WrapStorage("owner", "list", err)
	}
	index := make(map[string][]string)
	for rows.Next() {
		var ownerID, animalID string
		if err := rows.Scan(&ownerID, &animalID); err != nil {
			_ = rows.Close()
			return nil, facility.WrapStorage("owner", "list", err)
		}
		index[ownerID] = append(index[ownerID], animalID)
	}
	if err := closeRows(rows); err != nil {
		return nil, facility.WrapStorage("owner", "list", err)
	}

	for i := range out {
		out[i].AnimalIDs = append([]string{}, index[out[i].ID]...)
	}
	return out, nil
}

// Save y Update ignoran o.AnimalIDs: el índice se deriva de animals.owner_id.
func (r ownerRepo) Save(ctx context.Context, o facility.Owner) (string, error) {
	if o.ID == "" {
		o.ID = facility.NewID()
	}
	_, err := r.s.exec(ctx, `
		INSERT INTO owners (id, first_name, last_name, email, phone, address)
		VALUES (?, ?, ?, ?, ?, ?)
	`, o.ID, o.FirstName, o.LastName, o.Email, o.Phone, o.Address)
	if err != nil {
		return "", facility.WrapStorage("owner", "save", err)
	}
	return o.ID, nil
}

func (r ownerRepo) Update(ctx context.Context, o facility.Owner) error {
	return r.s.execAffecting(ctx, "owner", "update", o.ID, `
		UPDATE owners
		SET
			first_name = ?,
			last_name = ?,
			email = ?,
			phone = ?,
			address = ?
		WHERE id = ?
	`, o.FirstName, o.LastName, o.Email, o.Phone, o.Address, o.ID)
}

func (r ownerRepo) Delete(ctx context.Context, id string) error {
	return r.s.execAffecting(ctx, "owner", "delete", id, `DELETE FROM owners WHERE id = ?`, id)
}
