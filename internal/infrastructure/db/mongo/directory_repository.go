package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// findOne decodes the first match of filter into out.
func findOne(ctx context.Context, col *mongo.Collection, filter bson.M, out any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := col.FindOne(ctx, filter).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound
		}
		return fmt.Errorf("find in %s: %w", col.Name(), err)
	}
	return nil
}

// findAll decodes every match of filter, ordered by ID, into out.
func findAll(ctx context.Context, col *mongo.Collection, filter bson.M, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, byID)
	if err != nil {
		return fmt.Errorf("list %s: %w", col.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return nil
}

func setFields(ctx context.Context, col *mongo.Collection, id int64, fields bson.M, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s: %w", col.Name(), err)
	}
	return mustMatch(res.MatchedCount, notFound)
}

func deleteByID(ctx context.Context, col *mongo.Collection, id int64, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	return mustMatch(res.DeletedCount, notFound)
}

func insertWithID(ctx context.Context, col *mongo.Collection, seq *sequence, build func(id int64) any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := seq.next(ctx, col.Name())
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, build(id)); err != nil {
		return fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	return nil
}

// ── Doctors ──────────────────────────────────────────────────────────────────

type DoctorRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{col: db.Collection(collectionDoctors), seq: newSequence(db)}
}

type doctorDoc struct {
	ID        int64  `bson:"_id"`
	UserID    int64  `bson:"id_usuario"`
	FirstName string `bson:"nombre"`
	LastName  string `bson:"apellido"`
	Specialty string `bson:"especialidad"`
}

func (d *doctorDoc) toDomain() *domain.Doctor {
	return &domain.Doctor{ID: d.ID, UserID: d.UserID, FirstName: d.FirstName, LastName: d.LastName, Specialty: d.Specialty}
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	var doc doctorDoc
	err := insertWithID(ctx, r.col, r.seq, func(id int64) any {
		doc = doctorDoc{ID: id, UserID: d.UserID, FirstName: d.FirstName, LastName: d.LastName, Specialty: d.Specialty}
		return doc
	})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	var doc doctorDoc
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &doc, domain.ErrDoctorNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *DoctorRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	var doc doctorDoc
	if err := findOne(ctx, r.col, bson.M{"id_usuario": userID}, &doc, domain.ErrDoctorNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*domain.Doctor, error) {
	var docs []doctorDoc
	if err := findAll(ctx, r.col, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Doctor, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *DoctorRepository) UpdateSpecialty(ctx context.Context, id int64, specialty string) error {
	return setFields(ctx, r.col, id, bson.M{"especialidad": specialty}, domain.ErrDoctorNotFound)
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.col, id, domain.ErrDoctorNotFound)
}

// ── Patients ─────────────────────────────────────────────────────────────────

type PatientRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{col: db.Collection(collectionPatients), seq: newSequence(db)}
}

type patientDoc struct {
	ID        int64  `bson:"_id"`
	UserID    int64  `bson:"id_usuario"`
	FirstName string `bson:"nombre"`
	LastName  string `bson:"apellido"`
	Phone     int64  `bson:"telefono"`
	State     string `bson:"estado"`
}

func (d *patientDoc) toDomain() *domain.Patient {
	return &domain.Patient{
		ID:        d.ID,
		UserID:    d.UserID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Phone:     d.Phone,
		State:     domain.PatientState(d.State),
	}
}

func patientQuery(f ports.PatientFilter) bson.M {
	q := bson.M{}
	if f.State != "" {
		q["estado"] = string(f.State)
	}
	return q
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	var doc patientDoc
	err := insertWithID(ctx, r.col, r.seq, func(id int64) any {
		doc = patientDoc{ID: id, UserID: p.UserID, FirstName: p.FirstName, LastName: p.LastName, Phone: p.Phone, State: string(p.State)}
		return doc
	})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id int64, f ports.PatientFilter) (*domain.Patient, error) {
	q := patientQuery(f)
	q["_id"] = id

	var doc patientDoc
	if err := findOne(ctx, r.col, q, &doc, domain.ErrPatientNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PatientRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Patient, error) {
	var doc patientDoc
	if err := findOne(ctx, r.col, bson.M{"id_usuario": userID}, &doc, domain.ErrPatientNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PatientRepository) List(ctx context.Context, f ports.PatientFilter) ([]*domain.Patient, error) {
	var docs []patientDoc
	if err := findAll(ctx, r.col, patientQuery(f), &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Patient, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *PatientRepository) Update(ctx context.Context, id int64, phone int64, state domain.PatientState) error {
	return setFields(ctx, r.col, id, bson.M{"telefono": phone, "estado": string(state)}, domain.ErrPatientNotFound)
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.col, id, domain.ErrPatientNotFound)
}

// ── Clinics ──────────────────────────────────────────────────────────────────

type ClinicRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewClinicRepository(db *mongo.Database) *ClinicRepository {
	return &ClinicRepository{col: db.Collection(collectionClinics), seq: newSequence(db)}
}

type clinicDoc struct {
	ID      int64  `bson:"_id"`
	Name    string `bson:"nombre"`
	Address string `bson:"direccion"`
}

func (d *clinicDoc) toDomain() *domain.Clinic {
	return &domain.Clinic{ID: d.ID, Name: d.Name, Address: d.Address}
}

func (r *ClinicRepository) Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	var doc clinicDoc
	err := insertWithID(ctx, r.col, r.seq, func(id int64) any {
		doc = clinicDoc{ID: id, Name: c.Name, Address: c.Address}
		return doc
	})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClinicRepository) FindByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	var doc clinicDoc
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &doc, domain.ErrClinicNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClinicRepository) List(ctx context.Context) ([]*domain.Clinic, error) {
	var docs []clinicDoc
	if err := findAll(ctx, r.col, bson.M{}, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Clinic, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ClinicRepository) Update(ctx context.Context, id int64, name, address string) error {
	return setFields(ctx, r.col, id, bson.M{"nombre": name, "direccion": address}, domain.ErrClinicNotFound)
}

func (r *ClinicRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.col, id, domain.ErrClinicNotFound)
}
