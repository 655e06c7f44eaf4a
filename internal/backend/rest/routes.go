package rest

const (
	routeRecords        = "api/tms/translation/getAllTranslationTexts/{languageId}"
	routeAddRecord      = "api/tms/master/addMasterTextAndLayout"
	routeDeleteRecord   = "api/tms/master/deleteMasterText/{stringId}"
	routeUpdateMaster   = "api/tms/master/updateMasterString"
	routeUpdateOption   = "api/tms/translation/updateTranslationOption"
	routeDeleteOption   = "api/tms/translation/deleteTranslationByOptionsId/{languageId}/{stringId}/{optionIndex}"
	routeApprovalStatus = "api/tms/translation/updateApprovalStatusByTranslationStringId"
	routeAddComment     = "api/tms/translation/comments/addCommentsForTranslation"
	routeComments       = "api/tms/translation/comments/getCommentsByTranslationStringId/{languageId}/{stringId}"
	routeActivityLog    = "api/tms/translation/getTranslationTextsActivityLog/{stringId}"
	routeProjects       = "api/projects/getAllProjects"
	routeVariants       = "api/tms/variant/getVariantsByProjectId/{projectId}"
	routeLanguages      = "api/languages/getLanguagesByVariantId/{variantId}"
)
