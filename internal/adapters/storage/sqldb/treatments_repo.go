package sqldb

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type treatmentRepo struct{ s *Store }

const treatmentColumns = `t.id, t.animal_id, t.type, t.name, t.description, t.administration_date, t.next_due_date, t.administered`

func scanTreatment(sc interface{ Scan(...any) error }) (facility.Treatment, error) {
	var (
		t         facility.Treatment
		typ       string
		adminDate nullDate
		nextDue   nullDate
	)
	if err := sc.Scan(&t.ID, &t.AnimalID, &typ, &t.Name, &t.Description, &adminDate, &nextDue, &t.Administered); err != nil {
		return facility.Treatment{}, err
	}
	t.Type = facility.TreatmentType(typ)
	t.AdministrationDate = adminDate.ptr()
	t.NextDueDate = nextDue.ptr()
	return t, nil
}

func (r treatmentRepo) GetByID(ctx context.Context, id string) (facility.Treatment, error) {
	row := r.s.queryRow(ctx, `SELECT `+treatmentColumns+` FROM treatments t WHERE t.id = ?`, id)
	t, err := scanTreatment(row)
	if err != nil {
		if isNoRows(err) {
			return facility.Treatment{}, facility.NotFound("treatment", id)
		}
		return facility.Treatment{}, facility.WrapStorage("treatment", "get", err)
	}
	return t, nil
}

// GetAll agrupa por animal (mismo orden que animals.GetAll) y respeta el orden de alta.
func (r treatmentRepo) GetAll(ctx context.Context) ([]facility.Treatment, error) {
	return r.list(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments t
		JOIN animals a ON a.id = t.animal_id
		ORDER BY a.name, a.id, t.position
	`)
}

func (r treatmentRepo) ListByAnimal(ctx context.Context, animalID string) ([]facility.Treatment, error) {
	return r.list(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments t
		WHERE t.animal_id = ?
		ORDER BY t.position
	`, animalID)
}

func (r treatmentRepo) groupedByAnimal(ctx context.Context) (map[string][]facility.Treatment, error) {
	all, err := r.list(ctx, `
		SELECT `+treatmentColumns+`
		FROM treatments t
		ORDER BY t.animal_id, t.position
	`)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]facility.Treatment)
	for _, t := range all {
		out[t.AnimalID] = append(out[t.AnimalID], t)
	}
	return out, nil
}

func (r treatmentRepo) list(ctx context.Context, query string, args ...any) ([]facility.Treatment, error) {
	rows, err := r.s.query(ctx, query, args...)
	if err != nil {
		return nil, facility.WrapStorage("treatment", "list", err)
	}
	out := make([]facility.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			_ = rows.Close()
			return nil, facility.WrapStorage("treatment", "list", err)
		}
		out = append(out, t)
	}
	if err := closeRows(rows); err != nil {
		return nil, facility.WrapStorage("treatment", "list", err)
	}
	return out, nil
}

func (r treatmentRepo) Save(ctx context.Context, t facility.Treatment) (string, error) {
	if t.ID == "" {
		t.ID = facility.NewID()
	}

	var pos int64
	err := r.s.queryRow(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM treatments WHERE animal_id = ?`, t.AnimalID).Scan(&pos)
	if err != nil {
		return "", facility.WrapStorage("treatment", "save", err)
	}

	_, err = r.s.exec(ctx, `
		INSERT INTO treatments (
			id, animal_id, position,
			type, name, description,
			administration_date, next_due_date, administered
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID,
		t.AnimalID,
		pos,
		string(t.Type),
		t.Name,
		t.Description,
		r.s.dialect.dateArg(t.AdministrationDate),
		r.s.dialect.dateArg(t.NextDueDate),
		t.Administered,
	)
	if err != nil {
		return "", facility.WrapStorage("treatment", "save", err)
	}
	return t.ID, nil
}

// Update conserva la posición; si cambia el animal, pasa al final de la lista del nuevo.
func (r treatmentRepo) Update(ctx context.Context, t facility.Treatment) error {
	var prevAnimal string
	err := r.s.queryRow(ctx, `SELECT animal_id FROM treatments WHERE id = ?`, t.ID).Scan(&prevAnimal)
	if err != nil {
		if isNoRows(err) {
			return facility.NotFound("treatment", t.ID)
		}
		return facility.WrapStorage("treatment", "update", err)
	}

	if prevAnimal != t.AnimalID {
		var pos int64
		err := r.s.queryRow(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM treatments WHERE animal_id = ?`, t.AnimalID).Scan(&pos)
		if err != nil {
			return facility.WrapStorage("treatment", "update", err)
		}
		if _, err := r.s.exec(ctx, `UPDATE treatments SET animal_id = ?, position = ? WHERE id = ?`, t.AnimalID, pos, t.ID); err != nil {
			return facility.WrapStorage("treatment", "update", err)
		}
	}

	return r.s.execAffecting(ctx, "treatment", "update", t.ID, `
		UPDATE treatments
		SET
			type = ?,
			name = ?,
			description = ?,
			administration_date = ?,
			next_due_date = ?,
			administered = ?
		WHERE id = ?
	`,
		string(t.Type),
		t.Name,
		t.Description,
		r.s.dialect.dateArg(t.AdministrationDate),
		r.s.dialect.dateArg(t.NextDueDate),
		t.Administered,
		t.ID,
	)
}

func (r treatmentRepo) Delete(ctx context.Context, id string) error {
	return r.s.execAffecting(ctx, "treatment", "delete", id, `DELETE FROM treatments WHERE id = ?`, id)
}

// DeleteByAnimal no falla si el animal no tiene tratamientos.
func (r treatmentRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	if _, err := r.s.exec(ctx, `DELETE FROM treatments WHERE animal_id = ?`, animalID); err != nil {
		return facility.WrapStorage("treatment", "delete", err)
	}
	return nil
}
