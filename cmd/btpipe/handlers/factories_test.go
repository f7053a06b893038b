package handlers

import "testing"

// saveAndRestoreFactories snapshots every factory variable and restores it
// when the test finishes, so tests can inject stubs freely.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfigFile := loadConfigFile
	origLoadStore := loadStore
	origStateFileExists := stateFileExists
	origReadTickets := readTickets
	origPrepareDataset := prepareDataset
	origNewStorageClient := newStorageClient
	origNewGrantClient := newGrantClient
	origNewJobClient := newJobClient
	origNewModelLister := newModelLister
	origConfirmResume := confirmResume
	origWriteTicketsCSV := writeTicketsCSV
	origNowFunc := nowFunc
	origNewDeploymentClient := newDeploymentClient
	origNewRuntimeClient := newRuntimeClient
	origProvisionDeployment := provisionDeployment
	origWriteReport := writeReport
	origNewSuite := newSuite
	origNewStorageCleaner := newStorageCleaner
	origNewGrantCleaner := newGrantCleaner
	origRemoveFile := removeFile
	origConfirmCleanup := confirmCleanup

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		loadStore = origLoadStore
		stateFileExists = origStateFileExists
		readTickets = origReadTickets
		prepareDataset = origPrepareDataset
		newStorageClient = origNewStorageClient
		newGrantClient = origNewGrantClient
		newJobClient = origNewJobClient
		newModelLister = origNewModelLister
		confirmResume = origConfirmResume
		writeTicketsCSV = origWriteTicketsCSV
		nowFunc = origNowFunc
		newDeploymentClient = origNewDeploymentClient
		newRuntimeClient = origNewRuntimeClient
		provisionDeployment = origProvisionDeployment
		writeReport = origWriteReport
		newSuite = origNewSuite
		newStorageCleaner = origNewStorageCleaner
		newGrantCleaner = origNewGrantCleaner
		removeFile = origRemoveFile
		confirmCleanup = origConfirmCleanup
	})
}
