package usecase

const (
	alertTitleReport = "Report Error"
	alertTitleDebug  = "Download Zip File"
	debugPrompt      = "Complete - you will now be prompted to download a zipfile containing the server logs."

	debugArchiveName = "debug-logs"
	legacyTimeLayout = "15:04:05"
)
