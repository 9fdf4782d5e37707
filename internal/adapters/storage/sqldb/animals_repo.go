package sqldb

import (
	"context"
	"database/sql"

	"animal-facility/internal/domain/facility"
)

type animalRepo struct{ s *Store }

const animalColumns = `id, name, species, breed, gender, birth_date, owner_id, box_id`

func scanAnimal(sc interface{ Scan(...any) error }) (facility.Animal, error) {
	var (
		a       facility.Animal
		gender  string
		birth   nullDate
		ownerID sql.NullString
		boxID   sql.NullString
	)
	if err := sc.Scan(&a.ID, &a.Name, &a.Species, &a.Breed, &gender, &birth, &ownerID, &boxID); err != nil {
		return facility.Animal{}, err
	}
	a.Gender = facility.Gender(gender)
	a.BirthDate = birth.ptr()
	a.OwnerID = ownerID.String
	a.BoxID = boxID.String
	return a, nil
}

func (r animalRepo) GetByID(ctx context.Context, id string) (facility.Animal, error) {
	row := r.s.queryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)
	a, err := scanAnimal(row)
	if err != nil {
		if isNoRows(err) {
			return facility.Animal{}, facility.NotFound("animal", id)
		}
		return facility.Animal{}, facility.WrapStorage("animal", "get", err)
	}

	a.Treatments, err = treatmentRepo{r.s}.ListByAnimal(ctx, id)
	if err != nil {
		return facility.Animal{}, err
	}
	return a, nil
}

func (r animalRepo) GetAll(ctx context.Context) ([]facility.Animal, error) {
	rows, err := r.s.query(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY name, id`)
	if err != nil {
		return nil, facility.WrapStorage("animal", "list", err)
	}
	out := make([]facility.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			_ = rows.Close()
			return nil, facility.WrapStorage("animal", "list", err)
		}
		out = append(out, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, facility.WrapStorage("animal", "list", err)
	}

	byAnimal, err := treatmentRepo{r.s}.groupedByAnimal(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Treatments = byAnimal[out[i].ID]
		if out[i].Treatments == nil {
			out[i].Treatments = []facility.Treatment{}
		}
	}
	return out, nil
}

// nextOwnerRank conserva el orden de asignación de Owner.AnimalIDs.
func (r animalRepo) nextOwnerRank(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, nil
	}
	var rank int64
	err := r.s.queryRow(ctx, `SELECT COALESCE(MAX(owner_rank), 0) + 1 FROM animals WHERE owner_id = ?`, ownerID).Scan(&rank)
	return rank, err
}

// Save ignora a.Treatments: los tratamientos se persisten por TreatmentRepository.
func (r animalRepo) Save(ctx context.Context, a facility.Animal) (string, error) {
	if a.ID == "" {
		a.ID = facility.NewID()
	}
	rank, err := r.nextOwnerRank(ctx, a.OwnerID)
	if err != nil {
		return "", facility.WrapStorage("animal", "save", err)
	}

	_, err = r.s.exec(ctx, `
		INSERT INTO animals (
			id, name, species, breed, gender,
			birth_date, owner_id, owner_rank, box_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Gender),
		r.s.dialect.dateArg(a.BirthDate),
		nullString(a.OwnerID),
		rank,
		nullString(a.BoxID),
	)
	if err != nil {
		return "", facility.WrapStorage("animal", "save", err)
	}
	return a.ID, nil
}

func (r animalRepo) Update(ctx context.Context, a facility.Animal) error {
	var (
		prevOwner sql.NullString
		rank      int64
	)
	err := r.s.queryRow(ctx, `SELECT owner_id, owner_rank FROM animals WHERE id = ?`, a.ID).Scan(&prevOwner, &rank)
	if err != nil {
		if isNoRows(err) {
			return facility.NotFound("animal", a.ID)
		}
		return facility.WrapStorage("animal", "update", err)
	}
	if prevOwner.String != a.OwnerID {
		if rank, err = r.nextOwnerRank(ctx, a.OwnerID); err != nil {
			return facility.WrapStorage("animal", "update", err)
		}
	}

	return r.s.execAffecting(ctx, "animal", "update", a.ID, `
		UPDATE animals
		SET
			name = ?,
			species = ?,
			breed = ?,
			gender = ?,
			birth_date = ?,
			owner_id = ?,
			owner_rank = ?,
			box_id = ?
		WHERE id = ?
	`,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Gender),
		r.s.dialect.dateArg(a.BirthDate),
		nullString(a.OwnerID),
		rank,
		nullString(a.BoxID),
		a.ID,
	)
}

// Delete falla (FK) si el animal todavía tiene tratamientos.
func (r animalRepo) Delete(ctx context.Context, id string) error {
	return r.s.execAffecting(ctx, "animal", "delete", id, `DELETE FROM animals WHERE id = ?`, id)
}

// closeRows cierra y devuelve el error de iteración, si lo hubo.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}
