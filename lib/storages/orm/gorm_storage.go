package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/tally/lib/consoles"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/storages"
)

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console

	config      *map[string]string
	ignoreRules *model.IgnoreRules
	deltas      []*model.FileDelta

	sqlConfigs     map[string]*sqlConfig
	sqlIgnoreRules map[string]*sqlIgnoreRule
	sqlDeltas      map[string]*sqlFileDelta
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlIgnoreRule{},
		&sqlFileDelta{},
	)
	if err != nil {
		return nil, err
	}

	return &gormStorage{
		db:      db,
		console: console,
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (s *gormStorage) LoadConfig() (*map[string]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil {
		return s.config, nil
	}

	s.console.Printf("Loading config...\n")

	var sqlConfigs []*sqlConfig
	err := s.db.Find(&sqlConfigs).Error
	if err != nil {
		return nil, err
	}

	s.sqlConfigs = createCache(sqlConfigs)

	result := make(map[string]string, len(sqlConfigs))
	for _, sc := range sqlConfigs {
		result[sc.Key] = sc.Value
	}

	s.config = &result
	return s.config, nil
}

func (s *gormStorage) WriteConfig(config *map[string]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.config = config

	var sqlConfigs []*sqlConfig
	for k, v := range *config {
		sc := newSqlConfig(k, v)
		if prepareChange(&s.sqlConfigs, sc) {
			sqlConfigs = append(sqlConfigs, sc)
		}
	}

	err := s.writeAll(&sqlConfigs)
	if err != nil {
		return err
	}

	addList(&s.sqlConfigs, sqlConfigs)

	return nil
}

func (s *gormStorage) LoadIgnoreRules() (*model.IgnoreRules, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.ignoreRules != nil {
		return s.ignoreRules, nil
	}

	s.console.Printf("Loading ignore rules...\n")

	result := model.NewIgnoreRules()

	var sqlIgnoreRules []*sqlIgnoreRule
	err := s.db.Find(&sqlIgnoreRules).Error
	if err != nil {
		return nil, err
	}

	s.sqlIgnoreRules = createCache(sqlIgnoreRules)

	for _, sr := range sqlIgnoreRules {
		result.AddFromStorage(sr.ToModel())
	}

	s.ignoreRules = result
	return result, nil
}

func (s *gormStorage) WriteIgnoreRules() error {
	if s.ignoreRules == nil {
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlIgnoreRules := prepareChanges(s.ignoreRules.ListRules(), newSqlIgnoreRule, &s.sqlIgnoreRules)

	err := s.writeAll(&sqlIgnoreRules)
	if err != nil {
		return err
	}

	addList(&s.sqlIgnoreRules, sqlIgnoreRules)

	return nil
}

func (s *gormStorage) LoadFileDeltas() ([]*model.FileDelta, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.deltas != nil {
		return s.deltas, nil
	}

	s.console.Printf("Loading file deltas...\n")

	var sqlDeltas []*sqlFileDelta
	err := s.db.Find(&sqlDeltas).Error
	if err != nil {
		return nil, err
	}

	s.sqlDeltas = createCache(sqlDeltas)

	s.deltas = lo.Map(sqlDeltas, func(sd *sqlFileDelta, _ int) *model.FileDelta {
		return sd.ToModel()
	})
	return s.deltas, nil
}

func (s *gormStorage) WriteFileDeltas(deltas []*model.FileDelta) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.sqlDeltas == nil {
		s.sqlDeltas = map[string]*sqlFileDelta{}
	}

	sqlDeltas := prepareChanges(deltas, newSqlFileDelta, &s.sqlDeltas)

	err := s.writeAll(&sqlDeltas)
	if err != nil {
		return err
	}

	addList(&s.sqlDeltas, sqlDeltas)

	if s.deltas != nil {
		existing := lo.Associate(s.deltas, func(d *model.FileDelta) (model.UUID, bool) {
			return d.ID, true
		})
		for _, d := range deltas {
			if !existing[d.ID] {
				s.deltas = append(s.deltas, d)
			}
		}
	}

	return nil
}

func (s *gormStorage) QueryMonthlyTotals() ([]*storages.MonthlyTotal, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var result []*storages.MonthlyTotal
	err := s.db.Model(&sqlFileDelta{}).
		Select("month, skill, count(*) as files, sum(additions) as additions").
		Where("ignored = false").
		Group("month, skill").
		Order("month, skill").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *gormStorage) writeAll(rows any) error {
	if reflect.ValueOf(rows).Elem().Len() == 0 {
		return nil
	}

	now := time.Now().Local()
	db := s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})

	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error
}

func createCache[T sqlTable](rows []T) map[string]T {
	return lo.Associate(rows, func(i T) (string, T) {
		return i.CacheKey(), i
	})
}

func addList[T sqlTable](target *map[string]T, toAdd []T) {
	for _, v := range toAdd {
		(*target)[v.CacheKey()] = v
	}
}

func prepareChanges[S sqlTable, M any](models []M, toSql func(M) S, cache *map[string]S) []S {
	var result []S
	for _, m := range models {
		s := toSql(m)
		if prepareChange(cache, s) {
			result = append(result, s)
		}
	}
	return result
}

func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
