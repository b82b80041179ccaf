package dashboard

// User-facing texts.
const (
	TitleCreate = "Añadir Cita"
	TitleEdit   = "Editar Cita"

	MsgLoadFailed        = "Error al cargar las citas"
	MsgCreateNotAllowed  = "Solo los profesionales pueden crear citas"
	MsgSaved             = "Cita guardada exitosamente"
	MsgSaveFailed        = "Error al guardar la cita"
	MsgRescheduled       = "Cita actualizada"
	MsgUpdateFailed      = "Error al actualizar la cita"
	MsgRescheduleBusy    = "La cita aún se está actualizando"
	MsgDeleted           = "Cita eliminada permanentemente"
	MsgDeleteFailed      = "Error al eliminar la cita"
	MsgCompleted         = "✅ Cita marcada como completada"
	MsgCompleteFailed    = "Error al completar la cita"
	MsgCancelled         = "❌ Cita cancelada exitosamente"
	MsgCancelFailed      = "Error al cancelar la cita"
	MsgOpenFailed        = "No se pudo abrir la cita"
	MsgConfirmDelete     = "⚠️ ¿Está seguro de ELIMINAR PERMANENTEMENTE esta cita?\n\nEsta acción no se puede deshacer."
	MsgConfirmComplete   = "¿Marcar esta cita como completada?"
	MsgCancelPromptFmt   = "¿Por qué deseas cancelar la cita de %s?\n\n(Opcional, presiona OK para continuar)"
	DefaultCancelReason  = "Sin motivo especificado"
	OverlapPrefix        = "⚠️ "
	MsgLoading           = "Cargando..."
	MsgNoAppointments    = "No hay citas programadas"
	MsgListFailed        = "Error al cargar citas"
	MsgNoCancelled       = "No hay citas canceladas"
	MsgHistoryFailed     = "Error al cargar historial"
	UnassignedClientText = "-- Sin asignar --"
)
