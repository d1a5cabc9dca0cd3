package sweep_reservations

// Response результат одного прохода свипера
type Response struct {
	CheckedCount   int     // Сколько подтвержденных бронирований проверено
	CompletedCount int     // Сколько переведено в completed
	CompletedIDs   []int64 // ID переведенных бронирований
}
