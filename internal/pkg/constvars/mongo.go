package constvars

const (
	MongoCollectionSchedules     = "schedules"
	MongoCollectionPractitioners = "practitioners"

	MongoIndexOrderIDUnique = "time_slots_order_id_unique"
)
