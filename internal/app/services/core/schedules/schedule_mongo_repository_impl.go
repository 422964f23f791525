package schedules

import (
	"context"
	"flexera-service/internal/app/contracts"
	"flexera-service/internal/app/models"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleRepository {
	return &ScheduleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSchedules),
	}
}

// EnsureIndexes creates the uniqueness constraint on order id across all
// slots (webhook correlation depends on it) and the per-day lookup index.
func (r *ScheduleMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "practitioner_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "time_slots.order_id", Value: 1}},
			Options: options.Index().
				SetName(constvars.MongoIndexOrderIDUnique).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"time_slots.order_id": bson.M{"$type": "string"}}),
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBEnsureIndexes(err)
	}
	return nil
}

func (r *ScheduleMongoRepository) FindByPractitionerAndDate(ctx context.Context, practitionerID, date string) (*models.PractitionerSchedule, error) {
	var schedule models.PractitionerSchedule
	err := r.Collection.FindOne(ctx, bson.M{"practitioner_id": practitionerID, "date": date}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &schedule, nil
}

func (r *ScheduleMongoRepository) FindByPractitioner(ctx context.Context, practitionerID string) ([]models.PractitionerSchedule, error) {
	return r.findAll(ctx, bson.M{"practitioner_id": practitionerID})
}

func (r *ScheduleMongoRepository) FindByDate(ctx context.Context, date string) ([]models.PractitionerSchedule, error) {
	return r.findAll(ctx, bson.M{"date": date})
}

func (r *ScheduleMongoRepository) FindByBookedPatient(ctx context.Context, patientID string) ([]models.PractitionerSchedule, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"booked_by": patientID,
				"status":    models.SlotStatusBooked,
			},
		},
	}
	return r.findAll(ctx, filter)
}

func (r *ScheduleMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.PractitionerSchedule, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	schedules := []models.PractitionerSchedule{}
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return schedules, nil
}

func (r *ScheduleMongoRepository) CreateSchedule(ctx context.Context, schedule *models.PractitionerSchedule) (*models.PractitionerSchedule, error) {
	now := time.Now()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	result, err := r.Collection.InsertOne(ctx, schedule)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	schedule.ID = result.InsertedID.(primitive.ObjectID)
	return schedule, nil
}

func (r *ScheduleMongoRepository) AppendSlots(ctx context.Context, scheduleID string, slots []models.Slot) error {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	update := bson.M{
		"$push": bson.M{"time_slots": bson.M{"$each": slots}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *ScheduleMongoRepository) RemoveOpenSlot(ctx context.Context, scheduleID, slotID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}

	update := bson.M{
		"$pull": bson.M{
			"time_slots": bson.M{
				"id":     slotID,
				"status": models.SlotStatusOpen,
			},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

// ReserveSlot is the atomic conditional transition every booking depends on:
// the filter matches the slot only while it is still open, and the same
// command writes the pending state. Concurrent callers cannot both match.
func (r *ScheduleMongoRepository) ReserveSlot(ctx context.Context, practitionerID, date, slotID, patientID string, price float64, reservedAt time.Time) (bool, error) {
	filter := bson.M{
		"practitioner_id": practitionerID,
		"date":            date,
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"id":     slotID,
				"status": models.SlotStatusOpen,
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"time_slots.$.status":      models.SlotStatusPendingPayment,
			"time_slots.$.booked_by":   patientID,
			"time_slots.$.price":       price,
			"time_slots.$.reserved_at": reservedAt,
			"updated_at":               time.Now(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *ScheduleMongoRepository) AttachOrder(ctx context.Context, slotID, orderID string) (bool, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"id":     slotID,
				"status": models.SlotStatusPendingPayment,
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"time_slots.$.order_id": orderID,
			"updated_at":            time.Now(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *ScheduleMongoRepository) FindSlotByOrder(ctx context.Context, orderID string) (*models.PractitionerSchedule, *models.Slot, error) {
	var schedule models.PractitionerSchedule
	err := r.Collection.FindOne(ctx, bson.M{"time_slots.order_id": orderID}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, nil
		}
		return nil, nil, exceptions.ErrMongoDBFindDocument(err)
	}

	for i := range schedule.TimeSlots {
		if schedule.TimeSlots[i].OrderID == orderID {
			return &schedule, &schedule.TimeSlots[i], nil
		}
	}
	return nil, nil, nil
}

func (r *ScheduleMongoRepository) BookSlotByOrder(ctx context.Context, orderID, transactionID string) (bool, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"order_id": orderID,
				"status":   models.SlotStatusPendingPayment,
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"time_slots.$.status":         models.SlotStatusBooked,
			"time_slots.$.transaction_id": transactionID,
			"updated_at":                  time.Now(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *ScheduleMongoRepository) ReleaseSlotByOrder(ctx context.Context, orderID string) (bool, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"order_id": orderID,
				"status":   models.SlotStatusPendingPayment,
			},
		},
	}
	return r.releaseMatched(ctx, filter)
}

func (r *ScheduleMongoRepository) ReleaseSlotByID(ctx context.Context, slotID string) (bool, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"id":     slotID,
				"status": models.SlotStatusPendingPayment,
			},
		},
	}
	return r.releaseMatched(ctx, filter)
}

func (r *ScheduleMongoRepository) ReleaseBookedSlot(ctx context.Context, scheduleID, slotID, patientID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}

	filter := bson.M{
		"_id": objectID,
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"id":        slotID,
				"status":    models.SlotStatusBooked,
				"booked_by": patientID,
			},
		},
	}
	return r.releaseMatched(ctx, filter)
}

// releaseMatched returns the matched slot to open and clears owner, order id,
// transaction id, price and reservation time in one update.
func (r *ScheduleMongoRepository) releaseMatched(ctx context.Context, filter bson.M) (bool, error) {
	update := bson.M{
		"$set": bson.M{
			"time_slots.$.status": models.SlotStatusOpen,
			"updated_at":          time.Now(),
		},
		"$unset": bson.M{
			"time_slots.$.booked_by":      "",
			"time_slots.$.order_id":       "",
			"time_slots.$.transaction_id": "",
			"time_slots.$.price":          "",
			"time_slots.$.reserved_at":    "",
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

// ExpireStalePending uses the same conditional-update shape as ReserveSlot,
// so a sweep and a concurrently arriving webhook can never both win the same
// slot: whichever update matches first flips the state, the other matches
// nothing.
func (r *ScheduleMongoRepository) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"time_slots": bson.M{
			"$elemMatch": bson.M{
				"status":      models.SlotStatusPendingPayment,
				"reserved_at": bson.M{"$lt": cutoff},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"time_slots.$[stale].status": models.SlotStatusOpen,
			"updated_at":                 time.Now(),
		},
		"$unset": bson.M{
			"time_slots.$[stale].booked_by":      "",
			"time_slots.$[stale].order_id":       "",
			"time_slots.$[stale].transaction_id": "",
			"time_slots.$[stale].price":          "",
			"time_slots.$[stale].reserved_at":    "",
		},
	}
	arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{
				"stale.status":      models.SlotStatusPendingPayment,
				"stale.reserved_at": bson.M{"$lt": cutoff},
			},
		},
	})

	result, err := r.Collection.UpdateMany(ctx, filter, update, arrayFilters)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}
